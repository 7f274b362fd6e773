package config

import (
	"os"

	"github.com/Sourasish01/MERN-ChatApp/tools/decode"
	"github.com/pkg/errors"
)

// AppConfig carries everything the process needs, populated from the
// environment. Defaults mirror local development.
type AppConfig struct {
	Port         int    `json:"port"`
	NodeID       int64  `json:"node_id"`
	ClientOrigin string `json:"client_origin"`

	MongoURI string `json:"mongo_uri"`
	MongoDB  string `json:"mongo_db"`

	RedisAddr     string `json:"redis_addr"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	JWTSecret string `json:"jwt_secret"`

	UploadDir string `json:"upload_dir"`

	// WSRequireAuth makes the websocket handshake refuse a claimed userId
	// that is not backed by a valid session cookie.
	WSRequireAuth bool `json:"ws_require_auth"`
}

var envKeys = map[string]string{
	"port":            "PORT",
	"node_id":         "NODE_ID",
	"client_origin":   "CLIENT_ORIGIN",
	"mongo_uri":       "MONGODB_URI",
	"mongo_db":        "MONGO_DB",
	"redis_addr":      "REDIS_ADDR",
	"redis_password":  "REDIS_PASSWORD",
	"redis_db":        "REDIS_DB",
	"jwt_secret":      "JWT_SECRET",
	"upload_dir":      "UPLOAD_DIR",
	"ws_require_auth": "WS_REQUIRE_AUTH",
}

// Load reads the environment into an AppConfig.
func Load() (*AppConfig, error) {
	snapshot := map[string]any{
		"port":            5001,
		"node_id":         1,
		"client_origin":   "http://localhost:5173",
		"mongo_uri":       "mongodb://localhost:27017",
		"mongo_db":        "chatapp",
		"upload_dir":      "uploads",
		"ws_require_auth": true,
	}
	for tag, env := range envKeys {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			snapshot[tag] = v
		}
	}

	cfg, err := decode.Map[AppConfig](snapshot)
	if err != nil {
		return nil, errors.Wrap(err, "decode config from env")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}
