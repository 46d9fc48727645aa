// Package main provides the entry point for QuillPress, a self-hosted
// content-management backend for blogs. It runs a web server using the Fiber
// framework that exposes a JSON API for posts, pages, themes and settings,
// proxies media uploads to an S3-compatible object store, and serves the
// public blog plus the admin dashboard as server-rendered HTML. Persistence
// goes through gorm against SQLite, PostgreSQL or MySQL.
package main
