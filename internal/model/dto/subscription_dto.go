package dto

type SubscribeRequest struct {
	PlanID int64 `json:"plan_id" binding:"required"`
}

type SubmitPaymentRequest struct {
	SubscriptionID int64   `json:"subscription_id" binding:"required"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	Method         string  `json:"method" binding:"required,max=30"`
	Reference      string  `json:"reference" binding:"max=100"`
}

type ReviewPaymentRequest struct {
	Reason string `json:"reason"`
}
