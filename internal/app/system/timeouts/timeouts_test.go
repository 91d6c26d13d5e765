package timeouts

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestConfigure(t *testing.T) {
	defer Reset()

	Configure(Config{Section: time.Second})
	if Section() != time.Second {
		t.Errorf("Section() = %v, want 1s", Section())
	}
	if Download() != DefaultDownload {
		t.Errorf("Download() = %v, want default", Download())
	}
}

func TestConfigureFromEnv(t *testing.T) {
	defer Reset()

	t.Setenv("STRATAMINISTRY_TIMEOUT_DOWNLOAD", "45s")
	t.Setenv("STRATAMINISTRY_TIMEOUT_SIGNIN", "not-a-duration")

	if n := ConfigureFromEnv(); n != 1 {
		t.Errorf("ConfigureFromEnv() = %d, want 1", n)
	}
	if Download() != 45*time.Second {
		t.Errorf("Download() = %v, want 45s", Download())
	}
	if SignIn() != DefaultSignIn {
		t.Errorf("SignIn() = %v, want default", SignIn())
	}
}

func TestWithTimeout(t *testing.T) {
	ctx, cancel := WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "test")
	<-ctx.Done()
	cancel()
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("ctx.Err() = %v, want DeadlineExceeded", ctx.Err())
	}
}
