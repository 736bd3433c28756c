package gateway

import "github.com/stripe/stripe-go/v72"

var stripeStatuses = map[stripe.PaymentIntentStatus]Status{
	stripe.PaymentIntentStatusRequiresPaymentMethod: StatusPendingConfirmation,
	stripe.PaymentIntentStatusRequiresConfirmation:  StatusPendingConfirmation,
	stripe.PaymentIntentStatusRequiresAction:        StatusRequiresAction,
	stripe.PaymentIntentStatusRequiresCapture:       StatusRequiresAction,
	stripe.PaymentIntentStatusSucceeded:             StatusSucceeded,
	stripe.PaymentIntentStatusCanceled:              StatusFailed,
}

// MapStripeStatus folds a Stripe intent status onto Status. Statuses Stripe
// documents but the service does not branch on, such as processing, map to
// StatusUnknown.
func MapStripeStatus(raw stripe.PaymentIntentStatus) Status {
	if status, ok := stripeStatuses[raw]; ok {
		return status
	}
	return StatusUnknown
}
