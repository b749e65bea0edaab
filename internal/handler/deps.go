package handler

import (
	"placerank/internal/app/live"
	"placerank/internal/app/storage"
	"placerank/internal/app/store"
	"placerank/internal/configs"
)

// AppDeps bundles the collaborators the handlers need. Storage is nil when
// photo storage is not configured (development without S3 credentials).
type AppDeps struct {
	Config   *configs.AppConfig
	Accounts store.AccountStore
	Places   store.PlaceStore
	Storage  storage.StorageService
	Hub      *live.Hub
}
