package constants

const (
	MsgFlightLoaded        = "Flight loaded"
	MsgAirportLoaded       = "Airport loaded"
	MsgConnectionsLoaded   = "Connecting flights loaded"
	MsgEmptyQuery          = "Please enter a flight number or airport code"
	MsgSessionStarted      = "Tracking session started"
	MsgSessionNotFound     = "Tracking session not found"
	MsgSessionStopped      = "Tracking session stopped"
	MsgNotificationSet     = "You'll receive updates for this flight"
	MsgNotificationsListed = "Notifications fetched"
	MsgNotificationStats   = "Notification stats fetched"
)
