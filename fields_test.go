package glint

import (
	"testing"
	"time"
)

func TestKeyNames(t *testing.T) {
	tests := []struct {
		want string
		got  string
	}{
		{"field", KeyField.Field("email").Key().Name()},
		{"kind", KeyKind.Field("email").Key().Name()},
		{"verdict", KeyVerdict.Field("valid").Key().Name()},
		{"notice_id", KeyNoticeID.Field("n-1").Key().Name()},
		{"notice_kind", KeyNoticeKind.Field("success").Key().Name()},
		{"message", KeyMessage.Field("ok").Key().Name()},
		{"status", KeyStatus.Field("open").Key().Name()},
		{"progress", KeyProgress.Field("40%").Key().Name()},
		{"points", KeyPoints.Field(13).Key().Name()},
		{"lifetime", KeyLifetime.Field(time.Second).Key().Name()},
		{"wait", KeyWait.Field(250 * time.Millisecond).Key().Name()},
		{"state", KeyState.Field("active").Key().Name()},
		{"old_state", KeyOldState.Field("waiting").Key().Name()},
		{"new_state", KeyNewState.Field("active").Key().Name()},
		{"error", KeyError.Field("boom").Key().Name()},
		{"content_type", KeyContentType.Field("application/json").Key().Name()},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("expected key %q, got %q", tt.want, tt.got)
		}
	}
}
