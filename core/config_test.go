package core

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setenv(t *testing.T, key, value string) {
	prev, ok := os.LookupEnv(key)
	_ = os.Setenv(key, value)
	t.Cleanup(func() {
		if ok {
			_ = os.Setenv(key, prev)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func TestNewConfig(t *testing.T) {
	setenv(t, "ENV", "test")

	t.Run("defaults", func(t *testing.T) {
		conf := NewConfig()
		assert.Equal(t, "TEST", conf.Env)
		assert.True(t, conf.TestMode)
		assert.True(t, conf.Database.DisableTLS)
		assert.False(t, conf.Database.InMemory)
		assert.Equal(t, 2000, conf.Wellness.HydrationGoalML)
		assert.Equal(t, 5*time.Second, conf.Server.ShutdownTimeout)
		assert.Equal(t, "localhost:5432", conf.Database.Address())
	})

	t.Run("environment overrides", func(t *testing.T) {
		setenv(t, "TEST_WELLNESS_HYDRATIONGOALML", "2500")
		setenv(t, "TEST_DATABASE_INMEMORY", "true")
		setenv(t, "TEST_SERVER_SHUTDOWNTIMEOUT", "10s")
		setenv(t, "TEST_DEFAULTFROMEMAIL", "hello@uni.edu")

		conf := NewConfig()
		assert.Equal(t, 2500, conf.Wellness.HydrationGoalML)
		assert.True(t, conf.Database.InMemory)
		assert.Equal(t, 10*time.Second, conf.Server.ShutdownTimeout)
		assert.Equal(t, "hello@uni.edu", conf.DefaultFromEmail().Address)
	})
}
