// Package navigation names the screens of the app and the moves between
// them.
package navigation

const (
	RouteHome        = "/"
	RouteLog         = "/log"
	RouteMealResult  = "/meal-result"
	RoutePlan        = "/plan"
	RouteProgress    = "/progress"
	RouteSettings    = "/settings"
	RouteEditProfile = "/settings/edit-profile"
	RouteOnboarding  = "/onboarding"
	RouteNotFound    = "*"

	// RouteBack pops the current entry instead of naming a screen.
	RouteBack = "back"
)

type (
	// Navigation is a request to move to Route. Replace drops the current
	// entry from history and State travels with this move only.
	Navigation struct {
		Route   string                 `json:"route"`
		Replace bool                   `json:"replace,omitempty"`
		State   map[string]interface{} `json:"state,omitempty"`
	}

	Tab struct {
		Route string `json:"route"`
		Label string `json:"label"`
		Icon  string `json:"icon"`
	}
)

var Tabs = []Tab{
	{Route: RouteHome, Label: "Home", Icon: "home"},
	{Route: RouteLog, Label: "Log", Icon: "camera"},
	{Route: RoutePlan, Label: "Plan", Icon: "file-text"},
	{Route: RouteProgress, Label: "Progress", Icon: "bar-chart"},
	{Route: RouteSettings, Label: "Settings", Icon: "settings"},
}

var routes = map[string]bool{
	RouteHome:        true,
	RouteLog:         true,
	RouteMealResult:  true,
	RoutePlan:        true,
	RouteProgress:    true,
	RouteSettings:    true,
	RouteEditProfile: true,
	RouteOnboarding:  true,
}

func To(route string) *Navigation {
	return &Navigation{Route: route}
}

func ReplaceTo(route string) *Navigation {
	return &Navigation{Route: route, Replace: true}
}

func Back() *Navigation {
	return &Navigation{Route: RouteBack}
}

func (n *Navigation) WithState(key string, value interface{}) *Navigation {
	if n.State == nil {
		n.State = make(map[string]interface{})
	}
	n.State[key] = value
	return n
}

// Resolve maps any path onto a known route, unknown paths land on the
// not-found screen.
func Resolve(path string) string {
	if routes[path] {
		return path
	}
	return RouteNotFound
}

// ActiveTab returns the bottom bar entry highlighted for route, or false
// for screens outside the bar.
func ActiveTab(route string) (Tab, bool) {
	for _, tab := range Tabs {
		if tab.Route == route {
			return tab, true
		}
	}
	return Tab{}, false
}
