package config

// DB holds the database configuration settings.
// Engine selects the gorm driver: "sqlite" (default), "postgres" or "mysql".
// Path is only used by the sqlite engine.
type DB struct {
	Engine   string
	Path     string
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// Database engine names accepted in DB.Engine.
const (
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
	EngineMySQL    = "mysql"
)
