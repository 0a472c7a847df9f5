package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8000" {
		t.Errorf("port: got %s, want 8000", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 2*time.Minute {
		t.Errorf("timeout: got %v, want 2m", cfg.Server.Timeout)
	}
	if cfg.Upload.MaxBytes != 20<<20 {
		t.Errorf("max bytes: got %d, want %d", cfg.Upload.MaxBytes, 20<<20)
	}
	if cfg.RedisConfig.TTL != 10*time.Minute {
		t.Errorf("redis ttl: got %v, want 10m", cfg.RedisConfig.TTL)
	}
	if cfg.CacheEnable {
		t.Error("cache should be disabled by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OPENAI_MODEL", "llava")
	t.Setenv("CACHE_ENABLE", "true")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("port: got %s, want 9090", cfg.Server.Port)
	}
	if cfg.OpenAI.Model != "llava" {
		t.Errorf("model: got %s, want llava", cfg.OpenAI.Model)
	}
	if !cfg.CacheEnable {
		t.Error("cache should be enabled")
	}
	if cfg.Upload.MaxBytes != 1024 {
		t.Errorf("max bytes: got %d, want 1024", cfg.Upload.MaxBytes)
	}
}

func TestLoadClient(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *ClientConfig)
	}{
		{
			name: "defaults",
			check: func(t *testing.T, cfg *ClientConfig) {
				if cfg.Endpoint != "http://127.0.0.1:8000/analyze" {
					t.Errorf("endpoint: got %s", cfg.Endpoint)
				}
				if cfg.Timeout != 0 {
					t.Errorf("timeout: got %v, want 0", cfg.Timeout)
				}
				if cfg.Renderer != RendererAuto {
					t.Errorf("renderer: got %s, want auto", cfg.Renderer)
				}
				if cfg.WordWrap != 80 {
					t.Errorf("word wrap: got %d, want 80", cfg.WordWrap)
				}
			},
		},
		{
			name: "plain renderer",
			env:  map[string]string{"STYLESENSE_RENDERER": "plain"},
			check: func(t *testing.T, cfg *ClientConfig) {
				if cfg.Renderer != RendererPlain {
					t.Errorf("renderer: got %s, want plain", cfg.Renderer)
				}
			},
		},
		{
			name:    "unknown renderer",
			env:     map[string]string{"STYLESENSE_RENDERER": "html"},
			wantErr: true,
		},
		{
			name:    "negative timeout",
			env:     map[string]string{"STYLESENSE_TIMEOUT": "-1s"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := LoadClient()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadClient: %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
