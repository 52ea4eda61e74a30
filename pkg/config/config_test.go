package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadAPIDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("EMAIL_USER", "guide.desk@example.com")

	c, err := LoadAPI()
	if err != nil {
		t.Fatalf("LoadAPI: %v", err)
	}
	if c.JWTTTL != 720*time.Hour {
		t.Fatalf("JWTTTL = %v, want 720h", c.JWTTTL)
	}
	if c.HTTPAddr != ":8080" || c.DBDriver != "postgres" {
		t.Fatalf("defaults = %q %q", c.HTTPAddr, c.DBDriver)
	}
	if c.SMTP.User != "guide.desk@example.com" || c.SMTP.Host != "smtp.gmail.com" || c.SMTP.Port != 587 {
		t.Fatalf("smtp = %+v", c.SMTP)
	}
}

func TestLoadAPIRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "restored-after-test")
	os.Unsetenv("JWT_SECRET")
	if _, err := LoadAPI(); err == nil {
		t.Fatalf("LoadAPI without JWT_SECRET: want error")
	}
}

func TestLoadNotifyLists(t *testing.T) {
	t.Setenv("NOTIFY_EXCHANGES", "booking.exchange,payment.exchange")
	c, err := LoadNotify()
	if err != nil {
		t.Fatalf("LoadNotify: %v", err)
	}
	if len(c.Exchanges) != 2 || c.Exchanges[1] != "payment.exchange" {
		t.Fatalf("Exchanges = %v", c.Exchanges)
	}
	if len(c.Bindings) != 1 || c.Bindings[0] != "booking.*" {
		t.Fatalf("Bindings = %v", c.Bindings)
	}
}
