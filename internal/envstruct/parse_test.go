package envstruct_test

import (
	"errors"
	"testing"

	"github.com/musclemap/musclemap/internal/envstruct"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestPopulate(t *testing.T) {
	type config struct {
		Addr      string `env:"TEST_ADDR" envDefault:"localhost:8080"`
		SqliteURL string `env:"TEST_SQLITE_URL"`
		Ignored   string
	}

	tests := []struct {
		name    string
		env     map[string]string
		want    config
		wantErr error
	}{
		{
			name: "all set",
			env:  map[string]string{"TEST_ADDR": "localhost:0", "TEST_SQLITE_URL": ":memory:"},
			want: config{Addr: "localhost:0", SqliteURL: ":memory:"},
		},
		{
			name: "default applied",
			env:  map[string]string{"TEST_SQLITE_URL": "./db.sqlite3"},
			want: config{Addr: "localhost:8080", SqliteURL: "./db.sqlite3"},
		},
		{
			name:    "missing without default",
			env:     map[string]string{},
			wantErr: envstruct.ErrEnvNotSet,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg config
			err := envstruct.Populate(&cfg, lookupFrom(tt.env))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Populate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Populate() unexpected error: %v", err)
			}
			if cfg != tt.want {
				t.Errorf("Populate() = %+v, want %+v", cfg, tt.want)
			}
		})
	}
}

func TestPopulateRejectsNonStructs(t *testing.T) {
	var s string
	if err := envstruct.Populate(&s, lookupFrom(nil)); !errors.Is(err, envstruct.ErrInvalidValue) {
		t.Errorf("Populate(&string) error = %v, want ErrInvalidValue", err)
	}
	if err := envstruct.Populate(struct{}{}, lookupFrom(nil)); !errors.Is(err, envstruct.ErrInvalidValue) {
		t.Errorf("Populate(struct) error = %v, want ErrInvalidValue", err)
	}

	type withInt struct {
		Port int `env:"TEST_PORT"`
	}
	var c withInt
	if err := envstruct.Populate(&c, lookupFrom(map[string]string{"TEST_PORT": "80"})); !errors.Is(err, envstruct.ErrInvalidValue) {
		t.Errorf("Populate(int field) error = %v, want ErrInvalidValue", err)
	}
}
