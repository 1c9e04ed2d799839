// AngelaMos | 2026
// cookies.go

package auth

import (
	"net/http"
	"time"
)

// The three role-scoped credential slots. A session lives in exactly one
// of them, named for the role of the logged-in user.
const (
	SlotUser       = "User_Token"
	SlotAdmin      = "Admin_Token"
	SlotSuperAdmin = "SuperAdmin_Token"
)

// slotPrecedence is the fixed read order: first slot present wins.
var slotPrecedence = [3]string{SlotUser, SlotAdmin, SlotSuperAdmin}

// SlotForRole maps a role to its credential slot. Unknown roles fall
// back to the User slot, matching how the original treated the plain
// User role as the default.
func SlotForRole(role string) string {
	switch role {
	case "Admin":
		return SlotAdmin
	case "SuperAdmin":
		return SlotSuperAdmin
	default:
		return SlotUser
	}
}

// TokenFromRequest reads the credential slots in precedence order and
// returns the first token present, or "".
func TokenFromRequest(r *http.Request) string {
	for _, name := range slotPrecedence {
		if c, err := r.Cookie(name); err == nil && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

// SetSessionCookie stores the token in the slot named for the role. The
// other two slots are left untouched; login never writes a slot that is
// not the user's own.
func SetSessionCookie(
	w http.ResponseWriter,
	role, token string,
	ttl time.Duration,
) {
	http.SetCookie(w, &http.Cookie{
		Name:     SlotForRole(role),
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookies expires all three slots unconditionally, so logout
// is idempotent and independent of which slot held the session.
func ClearSessionCookies(w http.ResponseWriter) {
	for _, name := range slotPrecedence {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
