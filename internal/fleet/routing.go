package fleet

import (
	"errors"

	"github.com/motovision/motovision/internal/api"
	"github.com/motovision/motovision/internal/credstore"
	"github.com/motovision/motovision/internal/i18n"
)

// RouteKind tells a screen what to do with a failed call.
type RouteKind int

const (
	// RouteNetwork shows a retry-capable banner without navigating.
	RouteNetwork RouteKind = iota
	// RouteSessionExpired sends the user back to the login screen, at most
	// once per screen lifetime (see SessionGuard).
	RouteSessionExpired
	// RouteMessage shows the extracted message once.
	RouteMessage
)

// Routed is a classified failure ready for display.
type Routed struct {
	Kind    RouteKind
	Message string
}

// Route classifies a failed loading or mutating call. A missing local token
// and an HTTP 401/403 both mean the session is gone; transport failures are
// retryable; everything else is displayed with the best message available.
func Route(err error, t i18n.Translator) Routed {
	switch {
	case errors.Is(err, credstore.ErrTokenMissing) || api.IsAuthRejected(err):
		return Routed{Kind: RouteSessionExpired, Message: t("errors.sessionExpired")}
	case api.IsNetworkError(err):
		return Routed{Kind: RouteNetwork, Message: t("errors.network")}
	}

	if _, ok := api.IsAPIError(err); ok {
		if len(api.ValidationMessages(err)) > 0 || api.HasExtractedMessage(err) {
			return Routed{Kind: RouteMessage, Message: api.DisplayMessage(err)}
		}
	}
	return Routed{Kind: RouteMessage, Message: t("errors.generic")}
}
