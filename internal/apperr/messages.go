package apperr

// FriendlyMessage maps a kind and optional status code to user-facing text.
// Pure function over the taxonomy; no I/O.
func FriendlyMessage(kind Kind, code int) string {
	if code >= 500 {
		return "Something went wrong on our side. Please try again in a moment."
	}

	switch kind {
	case KindAuthentication:
		return "Your session has expired. Please sign in again."
	case KindAuthorization:
		return "You don't have access to this project."
	case KindValidation:
		return "That request doesn't look right. Please check the input and try again."
	case KindNotFound:
		return "We couldn't find what you were looking for."
	case KindStorage:
		return "We had trouble reaching your data. Please try again."
	case KindNetwork:
		return "Connection problem. Please check your network and try again."
	case KindServer:
		return "Something went wrong on our side. Please try again in a moment."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

// RecoverySuggestions maps a kind to ordered client-side recovery steps.
// Pure function over the taxonomy; no I/O.
func RecoverySuggestions(kind Kind) []string {
	switch kind {
	case KindAuthentication:
		return []string{"Sign in again", "Clear your browser session and retry"}
	case KindAuthorization:
		return []string{"Switch to the account that owns this project", "Ask the owner for access"}
	case KindValidation:
		return []string{"Check the identifier or fields you entered", "Reload the page and retry"}
	case KindNotFound:
		return []string{"Go back to your project list", "The item may have been deleted"}
	case KindStorage:
		return []string{"Try again in a few seconds", "If the problem persists, contact support"}
	case KindNetwork:
		return []string{"Check your internet connection", "Try again"}
	case KindServer:
		return []string{"Try again in a few seconds", "If the problem persists, contact support"}
	default:
		return []string{"Try again", "If the problem persists, contact support"}
	}
}
