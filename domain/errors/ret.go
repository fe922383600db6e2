package errors

// The Application return code errors
const (
	RetLayerFilesystemError      = 9
	RetLoadConfigError           = 10
	RetCreateDatabaseError       = 11
	RetMigrateDatabaseError      = 12
	RetCreatePublishRepoError    = 13
	RetCreateArtifactStoreError  = 14
	RetCreateCaptureServiceError = 15
	RetCreatePhotoWatcherError   = 16
	RetCreateWebServerError      = 40
)
