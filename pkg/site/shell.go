package site

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// TopPadding returns the padding class of the main element for a route.
func TopPadding(path string) string {
	switch {
	case path == "/":
		return "pt-80"
	case strings.HasPrefix(path, "/projects/"):
		return "pt-32"
	case path == "/about", path == "/contact":
		return "pt-20"
	default:
		return "pt-32"
	}
}

// NavDir is the direction of a previous/next navigation between projects.
type NavDir string

const (
	NavForward NavDir = "forward"
	NavBack    NavDir = "back"
	NavNone    NavDir = "none"
)

// ParseNavDir maps s to a NavDir. Anything unrecognised is [NavNone].
func ParseNavDir(s string) NavDir {
	switch NavDir(s) {
	case NavForward, NavBack:
		return NavDir(s)
	default:
		return NavNone
	}
}

// NavCookie carries the direction from the redirect to the next page view.
const NavCookie = "folio_nav_dir"

// navCookieTTL bounds how long an unconsumed direction lingers.
const navCookieTTL = 30 * time.Second

// SetNavDir records dir for the next page view.
func SetNavDir(w http.ResponseWriter, dir NavDir) {
	http.SetCookie(w, &http.Cookie{
		Name:     NavCookie,
		Value:    string(dir),
		Path:     "/",
		MaxAge:   int(navCookieTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ConsumeNavDir returns the recorded direction and clears it, so a reload
// of the same page animates with [NavNone].
func ConsumeNavDir(w http.ResponseWriter, r *http.Request) NavDir {
	c, err := r.Cookie(NavCookie)
	if err != nil {
		return NavNone
	}
	http.SetCookie(w, &http.Cookie{Name: NavCookie, Path: "/", MaxAge: -1})
	return ParseNavDir(c.Value)
}

// Transition holds the pixel offsets a page enters from and exits to.
type Transition struct {
	EnterX, EnterY float64
	ExitX, ExitY   float64
}

// TransitionFor returns the page transition for a navigation direction.
// Forward navigation enters from the right, back from the left.
func TransitionFor(dir NavDir) Transition {
	t := Transition{EnterY: 6, ExitY: -6}
	switch dir {
	case NavForward:
		t.EnterX, t.ExitX = 10, -10
	case NavBack:
		t.EnterX, t.ExitX = -10, 10
	}
	return t
}

// Navbar scroll effect constants.
const (
	NavbarScrollRange = 180.0
	NavbarMaxOpacity  = 0.75
	NavbarMaxBlur     = 12.0
)

// NavbarEffect is the tint and blur of the navbar at a scroll offset.
type NavbarEffect struct {
	Opacity float64
	Blur    float64
}

// NavbarStyle returns the navbar effect for a vertical scroll offset.
func NavbarStyle(scrollY float64) NavbarEffect {
	t := clamp(scrollY/NavbarScrollRange, 0, 1)
	return NavbarEffect{
		Opacity: lerp(0, NavbarMaxOpacity, t),
		Blur:    lerp(0, NavbarMaxBlur, t),
	}
}

// CSS returns the inline declarations for the effect.
func (e NavbarEffect) CSS() string {
	return fmt.Sprintf("background-image:linear-gradient(to bottom,rgba(0,0,0,%.3f) 0%%,rgba(0,0,0,0) 100%%);"+
		"backdrop-filter:blur(%.2fpx);-webkit-backdrop-filter:blur(%.2fpx)", e.Opacity, e.Blur, e.Blur)
}

func clamp(n, lo, hi float64) float64 { return max(lo, min(hi, n)) }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
