package cli

import "github.com/forensicvideo/console/internal/client/auth"

// NopNavigator satisfies auth.Navigator for headless runs, where there is no
// screen to switch.
type NopNavigator struct{}

func (NopNavigator) NavigateTo(route auth.Route) {}
