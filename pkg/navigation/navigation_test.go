package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	assert.Equal(t, RouteMealResult, Resolve("/meal-result"))
	assert.Equal(t, RouteEditProfile, Resolve("/settings/edit-profile"))
	assert.Equal(t, RouteNotFound, Resolve("/does-not-exist"))
	assert.Equal(t, RouteNotFound, Resolve(""))
}

func TestNavigation_WithState(t *testing.T) {
	nav := To(RouteMealResult).WithState("mealType", "lunch")

	assert.Equal(t, RouteMealResult, nav.Route)
	assert.False(t, nav.Replace)
	assert.Equal(t, "lunch", nav.State["mealType"])

	assert.True(t, ReplaceTo(RouteOnboarding).Replace)
}

func TestActiveTab(t *testing.T) {
	tab, ok := ActiveTab(RouteProgress)
	assert.True(t, ok)
	assert.Equal(t, "Progress", tab.Label)

	_, ok = ActiveTab(RouteOnboarding)
	assert.False(t, ok)
}
