package config

// StorageConfig selects and configures the page-text storage backend.
type StorageConfig struct {
	Provider  string // "local" or "s3"
	LocalPath string
	S3Bucket  string
	S3Prefix  string
	AWSRegion string
}

func loadStorageConfig() StorageConfig {
	return StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		LocalPath: getEnv("STORAGE_LOCAL_PATH", "./data"),
		S3Bucket:  getEnv("STORAGE_S3_BUCKET", ""),
		S3Prefix:  getEnv("STORAGE_S3_PREFIX", ""),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
	}
}
