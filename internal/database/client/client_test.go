package client

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/GoArmGo/ContactBook/internal/config"
	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	username string
	password string
	calls    int
}

func (f *fakeResolver) Resolve(ctx context.Context, secretID string) (string, string) {
	f.calls++
	return f.username, f.password
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveDescriptorNoConfiguration(t *testing.T) {
	cfg := &config.Config{SQLitePath: "./email.db"}

	desc := ResolveDescriptor(context.Background(), cfg, nil, testLogger())

	assert.Equal(t, DriverSQLite, desc.Driver)
	assert.Equal(t, "./email.db", desc.DSN)
}

func TestResolveDescriptorDirectCredentials(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db.internal",
		DBName:     "contacts",
		DBUser:     "app",
		DBPassword: "s3cret",
		SecretARN:  "arn:secret",
		SQLitePath: "./email.db",
	}
	resolver := &fakeResolver{username: "other", password: "other"}

	desc := ResolveDescriptor(context.Background(), cfg, resolver, testLogger())

	assert.Equal(t, DriverMySQL, desc.Driver)
	assert.Equal(t, "db.internal", desc.Host)
	assert.Equal(t, config.DefaultDBPort, desc.Port)
	assert.Equal(t, "contacts", desc.Name)
	assert.Equal(t, "app", desc.User)
	assert.Contains(t, desc.DSN, "app:s3cret@tcp(db.internal:3306)/contacts")
	// Прямые параметры имеют приоритет: секрет не запрашивается.
	assert.Zero(t, resolver.calls)
}

func TestResolveDescriptorSecretCredentials(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db.internal",
		DBName:     "contacts",
		SecretARN:  "arn:secret",
		SQLitePath: "./email.db",
	}
	resolver := &fakeResolver{username: "bob", password: "pw"}

	desc := ResolveDescriptor(context.Background(), cfg, resolver, testLogger())

	assert.Equal(t, DriverMySQL, desc.Driver)
	assert.Equal(t, "bob", desc.User)
	assert.Equal(t, 1, resolver.calls)
}

func TestResolveDescriptorSecretYieldsNothing(t *testing.T) {
	cfg := &config.Config{
		DBHost:     "db.internal",
		DBName:     "contacts",
		SecretARN:  "arn:secret",
		SQLitePath: "./email.db",
	}
	resolver := &fakeResolver{}

	desc := ResolveDescriptor(context.Background(), cfg, resolver, testLogger())

	assert.Equal(t, DriverSQLite, desc.Driver)
	assert.Equal(t, 1, resolver.calls)
}

func TestResolveDescriptorSecretWithoutHost(t *testing.T) {
	cfg := &config.Config{
		SecretARN:  "arn:secret",
		SQLitePath: "./email.db",
	}
	resolver := &fakeResolver{username: "bob", password: "pw"}

	desc := ResolveDescriptor(context.Background(), cfg, resolver, testLogger())

	// Без хоста и имени базы секрет не трогаем вовсе.
	assert.Equal(t, DriverSQLite, desc.Driver)
	assert.Zero(t, resolver.calls)
}

func TestDescriptorStringRedactsPassword(t *testing.T) {
	desc := mysqlDescriptor("db.internal", 3306, "contacts", "app", "s3cret")

	assert.NotContains(t, desc.String(), "s3cret")
	assert.Contains(t, desc.String(), "app@db.internal:3306/contacts")

	local := Descriptor{Driver: DriverSQLite, DSN: "./email.db", Name: "./email.db"}
	assert.Equal(t, "sqlite3://./email.db", local.String())
}
