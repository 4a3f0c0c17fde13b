//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeOrder builds a completed FRP order record with unique ids.
func MakeOrder(opts ...func(*domain.Order)) domain.Order {
	uid := "ord-" + UniqSuffix()
	now := time.Now().UTC().Truncate(time.Second)

	o := domain.Order{
		OrderUID: uid,
		Project:  domain.ProjectFRP,
		UserID:   "user-" + UniqSuffix(),

		FirstName: "John",
		LastName:  "Smith",
		Address1:  "Main st 1",
		City:      "Metropolis",
		State:     "NY",
		Zip:       "10001",
		Phone:     "2025550101",
		Email:     "john@example.com",

		SourceCode:  "SRC01",
		SKU:         "WIDGET1",
		ProductName: "Widget",
		SessionID:   "sess-" + UniqSuffix(),

		CardLast4:      "4242",
		CardExpiration: "1229",

		Status:            domain.StatusCompleted,
		ValidationStatus:  true,
		ValidationMessage: "accepted",
		ValidationDate:    now,

		CreatedAt: now,
	}

	for _, fn := range opts {
		fn(&o)
	}
	return o
}

func WithProject(p domain.Project) func(*domain.Order) {
	return func(o *domain.Order) { o.Project = p }
}

func WithUser(userID string) func(*domain.Order) {
	return func(o *domain.Order) { o.UserID = userID }
}

func WithOrderUID(uid string) func(*domain.Order) {
	return func(o *domain.Order) { o.OrderUID = uid }
}

func WithStatus(st domain.Status, validation bool) func(*domain.Order) {
	return func(o *domain.Order) {
		o.Status = st
		o.ValidationStatus = validation
	}
}

func WithEmailProduct(email, product string) func(*domain.Order) {
	return func(o *domain.Order) {
		o.Email = email
		o.ProductName = product
	}
}

// MakeSubmission builds a minimal valid FRP submission.
func MakeSubmission(opts ...func(*domain.Submission)) domain.Submission {
	s := domain.Submission{
		Project:        domain.ProjectFRP,
		UserID:         "user-" + UniqSuffix(),
		FirstName:      "John",
		LastName:       "Smith",
		Address1:       "Main st 1",
		City:           "Metropolis",
		State:          "NY",
		Zip:            "10001",
		Phone:          "2025550101",
		Email:          "john@example.com",
		SourceCode:     "SRC01",
		SKU:            "WIDGET1",
		ProductName:    "Widget",
		SessionID:      "sess-" + UniqSuffix(),
		CardNumber:     "4242424242424242",
		CardExpiration: "1229",
		CVV:            "123",
	}
	for _, fn := range opts {
		fn(&s)
	}
	return s
}
