package config

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSensitiveString(t *testing.T) {
	t.Run("Should hide the database password when formatted", func(t *testing.T) {
		db := Default().Database
		db.Password = SensitiveString("festival-db-pass")
		assert.Equal(t, "[REDACTED]", db.Password.String())
		assert.NotContains(t, fmt.Sprintf("%v", db), "festival-db-pass")
	})
	t.Run("Should keep an unset password empty", func(t *testing.T) {
		assert.Empty(t, Default().Database.Password.String())
	})
	t.Run("Should expose the raw password to the driver", func(t *testing.T) {
		db := DatabaseConfig{Password: SensitiveString("festival-db-pass")}
		assert.Equal(t, "festival-db-pass", db.Password.Value())
	})
}

func TestSensitiveString_JSON(t *testing.T) {
	t.Run("Should redact the password when the database config is marshaled", func(t *testing.T) {
		db := DatabaseConfig{Host: "db.artofest.local", Password: SensitiveString("festival-db-pass")}
		data, err := json.Marshal(db)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "festival-db-pass")
		var out map[string]any
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, "[REDACTED]", out["Password"])
		assert.Equal(t, "db.artofest.local", out["Host"])
	})
	t.Run("Should read a password from a JSON document", func(t *testing.T) {
		var db struct {
			Password SensitiveString `json:"password"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"password":"from-json"}`), &db))
		assert.Equal(t, "from-json", db.Password.Value())
	})
	t.Run("Should marshal an empty password as an empty string", func(t *testing.T) {
		data, err := json.Marshal(SensitiveString(""))
		require.NoError(t, err)
		assert.Equal(t, `""`, string(data))
	})
}
