package prompt

import "fmt"

// User-facing message catalog. Every visible response, including failures,
// is one of these before the formatter pass rephrases it.
const (
	MsgCancelNotFound  = "I could not find that order. Please double-check the order id and email address."
	MsgCancelError     = "Something went wrong while cancelling the order. Please try again."
	MsgProcessingError = "I ran into an error while handling your request. Please try again."
	MsgEmailNeeded     = "I can help with your orders. Could you share the email address the orders were placed under?"
	MsgLookupError     = "Something went wrong while looking up your orders. Please try again."
	MsgOutOfScope      = "I understand you have a general question. Right now I can help with order-related requests and chat about Gundam. Feel free to ask about your orders or talk Gundam with me!"
	MsgClarification   = "I'm not quite sure what you're asking for. Could you rephrase that? I can look up orders, cancel pending orders, or answer product questions."
)

func MsgCancelSuccess(orderID string) string {
	return fmt.Sprintf("Order %s has been cancelled successfully.", orderID)
}

func MsgCancelInvalidStatus(status string) string {
	return fmt.Sprintf("An order with status %q cannot be cancelled. Only pending orders can be cancelled.", status)
}

// MsgMissingInfo asks for the still-missing cancellation fields, already
// joined with "and" when both are missing.
func MsgMissingInfo(fields string, plural bool) string {
	pronoun := "it"
	if plural {
		pronoun = "them"
	}
	return fmt.Sprintf("To cancel an order I need %s. Could you provide %s?", fields, pronoun)
}

func MsgNoOrders(email string) string {
	return fmt.Sprintf("I could not find any orders linked to %s. Please double-check the email address.", email)
}
