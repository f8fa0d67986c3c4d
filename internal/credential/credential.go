// Package credential resolves how the client authenticates: with the host
// platform's session blob, with a debug contractor id, or not at all.
// Exactly one mode is active per session.
package credential

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/Iron-Ham/workorders/internal/host"
	"github.com/Iron-Ham/workorders/internal/launch"
)

// Header names understood by the API.
const (
	HeaderSession = "X-Telegram-Init-Data"
	HeaderDebug   = "X-Debug-User-Id"
)

// Kind discriminates the credential variants.
type Kind int

const (
	KindNone Kind = iota
	KindSession
	KindDebug
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindSession:
		return "session"
	case KindDebug:
		return "debug"
	default:
		return "none"
	}
}

// Credential is Session(token) | Debug(id) | None. The zero value is None.
// Values are immutable.
type Credential struct {
	kind  Kind
	token string
	id    int64
}

// None returns the absent credential.
func None() Credential { return Credential{} }

// Session returns a host-session credential. An empty blob yields None.
func Session(initData string) Credential {
	if initData == "" {
		return None()
	}
	return Credential{kind: KindSession, token: initData}
}

// Debug returns a debug credential. Zero is not a contractor id and
// yields None.
func Debug(id int64) Credential {
	if id == 0 {
		return None()
	}
	return Credential{kind: KindDebug, id: id}
}

// ParseDebug converts a debug_user_id launch value. Blank, non-numeric
// and zero values yield None.
func ParseDebug(raw string) Credential {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return None()
	}
	return Debug(id)
}

// Kind returns the active variant.
func (c Credential) Kind() Kind { return c.kind }

// IsNone reports whether no credential is available.
func (c Credential) IsNone() bool { return c.kind == KindNone }

// Token returns the session blob; ok is false for other variants.
func (c Credential) Token() (token string, ok bool) {
	return c.token, c.kind == KindSession
}

// DebugID returns the debug contractor id; ok is false for other variants.
func (c Credential) DebugID() (id int64, ok bool) {
	return c.id, c.kind == KindDebug
}

// Apply sets the header for the active variant on h and removes the other.
func (c Credential) Apply(h http.Header) {
	h.Del(HeaderSession)
	h.Del(HeaderDebug)
	switch c.kind {
	case KindSession:
		h.Set(HeaderSession, c.token)
	case KindDebug:
		h.Set(HeaderDebug, strconv.FormatInt(c.id, 10))
	}
}

// String describes the credential without revealing the session blob.
func (c Credential) String() string {
	switch c.kind {
	case KindSession:
		return fmt.Sprintf("session(%d bytes)", len(c.token))
	case KindDebug:
		return fmt.Sprintf("debug(%d)", c.id)
	default:
		return "none"
	}
}

// Resolve runs the credential step of bootstrap. When the host platform is
// present it is signalled ready, asked to expand, and its init data
// becomes the credential; the debug launch parameter is then ignored.
// Without a host, the debug_user_id launch parameter is used if valid.
func Resolve(p host.Platform, params launch.Params) Credential {
	if p != nil {
		p.Ready()
		p.Expand()
		return Session(p.InitData())
	}
	return ParseDebug(params.DebugUserID)
}
