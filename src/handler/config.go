package handler

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	MaxUploadSizeBytes int64 `envconfig:"MAX_UPLOAD_SIZE_BYTES" default:"10485760"` // 10 MB
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
