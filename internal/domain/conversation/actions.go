package conversation

// Action is a stable, localization-independent identifier for what the user
// asked for. The delivery layer resolves rendered button captions and
// commands into actions; the engine never matches on display text.
type Action string

const (
	// ActionNone marks plain text input with no recognized action
	ActionNone Action = ""

	ActionStart Action = "start"
	ActionInfo  Action = "info"
	ActionAdmin Action = "admin"

	// citizen menu
	ActionBasicProtection Action = "basic_protection"
	ActionSubscribe       Action = "subscribe"
	ActionUnsubscribe     Action = "unsubscribe"
	ActionCheckSymptoms   Action = "check_symptoms"
	ActionWriteReport     Action = "write_report"
	ActionReportOverprice Action = "report_overprice"
	ActionReportOther     Action = "report_other"

	// generic yes / no buttons
	ActionConfirm Action = "confirm"
	ActionDecline Action = "decline"

	// admin menu
	ActionSendNews   Action = "send_news"
	ActionViewUnseen Action = "view_unseen"
	ActionViewSeen   Action = "view_seen"
	ActionFinish     Action = "finish"
	ActionCancel     Action = "cancel"

	// report viewer buttons
	ActionPrevious     Action = "previous"
	ActionNext         Action = "next"
	ActionMarkSeen     Action = "mark_seen"
	ActionMarkUnseen   Action = "mark_unseen"
	ActionRemoveReport Action = "remove_report"
	ActionQuitViewer   Action = "quit_viewer"
)

// Message keys looked up in the language catalogs by the delivery layer
const (
	KeyStart              = "START"
	KeyInfo               = "INFO"
	KeyBasicProtection    = "BASIC_PROTECTION_START"
	KeySubscribeSuccess   = "SUBSCRIBE_SUCCESS"
	KeyUnsubscribeSuccess = "UNSUBSCRIBE_SUCCESS"
	KeyBasicSymptoms      = "BASIC_SYMPTOMS"
	KeyWarning            = "WARNING"
	KeyNoWarning          = "NO_WARNING"
	KeySelectReportType   = "SELECT_REPORT_TYPE"
	KeyWriteYourReport    = "WRITE_YOUR_REPORT"
	KeyConfirmSend        = "CONFIRM_SEND"
	KeyThankYou           = "THANK_YOU_FOR_REPORT"
	KeyReportingCancelled = "REPORTING_CANCELLED"
	KeyUnknownSelection   = "UNKNOWN_SELECTION"
	KeyUnknownError       = "UNKNOWN_ERROR"
	KeyAdminPrivError     = "ADMIN_MENU_PRIV_ERROR"
	KeyAdminPanelStart    = "ADMIN_PANEL_START"
	KeySubmitNewsIntro    = "SUBMIT_NEWS_INTRO"
	KeySubmitNewsAppended = "SUBMIT_NEWS_APPENDED"
	KeySubmitNewsConfirm  = "SUBMIT_NEWS_CONFIRM"
	KeySubmitSuccess      = "SUBMIT_SUCCESS"
	KeyNoReportsOfType    = "ERROR_NO_REPORTS_OF_THIS_TYPE"
	KeyReportHeader       = "REPORT_HEADER_TEMPLATE"
	KeyReportRemoved      = "REPORT_IS_REMOVED"
	KeyAlreadyFirst       = "ALREADY_FIRST"
	KeyAlreadyLast        = "ALREADY_LAST"
	KeyViewingQuit        = "VIEWING_IS_QUIT"
)
