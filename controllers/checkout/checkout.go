package checkoutControllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	orderControllers "github.com/sunutees/storefront-api/controllers/order"
	"github.com/sunutees/storefront-api/models"
	"github.com/sunutees/storefront-api/payments"
	"github.com/sunutees/storefront-api/pricing"
	"github.com/sunutees/storefront-api/settings"
	"github.com/sunutees/storefront-api/store"
)

// -------- Request / Response Structs --------

type CustomerInput struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone"`
	Whatsapp     string `json:"whatsapp"`
	Organization string `json:"organization"`
}

type CheckoutRequest struct {
	Items           []pricing.CartItem `json:"cartItems" binding:"required,min=1,dive"`
	Currency        string             `json:"currency" binding:"required"`
	Subtotal        float64            `json:"subtotal"`
	Discount        float64            `json:"discount"`
	ShippingFee     float64            `json:"shippingFee"`
	Customer        CustomerInput      `json:"customer" binding:"required"`
	ShippingAddress string             `json:"shippingAddress"`
}

type CheckoutResponse struct {
	CheckoutURL string `json:"checkout_url"`
	OrderID     uint   `json:"order_id"`
}

// CheckoutError carries the HTTP classification plus the human-readable
// reasons a blocked customer needs.
type CheckoutError struct {
	Status  int      `json:"-"`
	Message string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func (e *CheckoutError) Error() string { return e.Message }

// Deps are the collaborators the orchestrator composes. All of them are
// interfaces or injected values so tests can substitute doubles.
type Deps struct {
	Validator  *pricing.Validator
	Converter  *pricing.Converter
	Tax        settings.Resolver
	Store      store.OrderStore
	Gateway    payments.Gateway
	SuccessURL string
	CancelURL  string
}

// -------- Core Logic --------

// ProcessCheckout runs the full pricing pipeline: shape validation, server-side
// re-pricing, tax and total computation, persistence with validated numbers,
// and payment-session creation. Steps are strictly ordered; the gateway's line
// items must reference a total that matches the already-persisted order.
func ProcessCheckout(ctx context.Context, deps Deps, req CheckoutRequest) (CheckoutResponse, *CheckoutError) {
	// 1. request shape
	if reasons := validateShape(req); len(reasons) > 0 {
		return CheckoutResponse{}, &CheckoutError{Status: http.StatusBadRequest, Message: "invalid checkout request", Details: reasons}
	}

	// 2. currency: a bad code is a hard failure, never a default — a 1:1
	// fallback rate would let a tampered request underpay
	currency, err := pricing.ParseCurrency(req.Currency)
	if err != nil {
		return CheckoutResponse{}, &CheckoutError{Status: http.StatusBadRequest, Message: fmt.Sprintf("unsupported currency %q", req.Currency)}
	}

	// 3. re-price everything from the catalog
	result := deps.Validator.Validate(ctx, req.Items, currency, req.Subtotal, req.Discount)
	for _, w := range result.Warnings {
		log.Printf("⚠️ pricing warning: %s", w)
	}
	if result.HasCriticalErrors {
		log.Printf("❌ checkout blocked: %s", strings.Join(result.Errors, "; "))
		return CheckoutResponse{}, &CheckoutError{Status: http.StatusBadRequest, Message: "cart could not be priced", Details: result.Errors}
	}

	// 4. shipping fee sanity — negative can only arrive by tampering
	if req.ShippingFee < 0 {
		log.Printf("❌ rejected negative shipping fee %.2f", req.ShippingFee)
		return CheckoutResponse{}, &CheckoutError{Status: http.StatusBadRequest, Message: "shipping fee must not be negative"}
	}

	// 5. tax on the discounted subtotal, never the raw pre-discount one
	taxSettings, err := deps.Tax.TaxSettings(ctx)
	if err != nil {
		log.Printf("❌ failed to load tax settings: %v", err)
		return CheckoutResponse{}, &CheckoutError{Status: http.StatusInternalServerError, Message: "failed to load tax settings"}
	}
	tax := pricing.ComputeTax(deps.Converter, result.OriginalSubtotal-result.Discount, currency, taxSettings)

	// 6. total from the pre-discount subtotal; the discount comes off once, here
	totalAmount := pricing.OrderTotal(result.OriginalSubtotal, req.ShippingFee, tax, result.Discount)

	// 7. order header with validated numbers only
	customerID, err := deps.Store.UpsertCustomer(ctx, models.Customer{
		Name:         req.Customer.Name,
		Email:        req.Customer.Email,
		Phone:        req.Customer.Phone,
		Whatsapp:     req.Customer.Whatsapp,
		Organization: req.Customer.Organization,
	})
	if err != nil {
		log.Printf("❌ customer upsert failed: %v", err)
		return CheckoutResponse{}, &CheckoutError{Status: http.StatusInternalServerError, Message: "failed to save customer"}
	}

	order := models.Order{
		CustomerID:      customerID,
		TotalAmount:     totalAmount,
		ShippingFee:     req.ShippingFee,
		TaxAmount:       tax,
		DiscountAmount:  result.Discount,
		CurrencyCode:    string(currency),
		ShippingAddress: req.ShippingAddress,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
	}
	if err := deps.Store.CreateOrder(ctx, &order); err != nil {
		log.Printf("❌ order creation failed: %v", err)
		return CheckoutResponse{}, &CheckoutError{Status: http.StatusInternalServerError, Message: "failed to create order"}
	}

	// 8. order items from validated per-unit prices; RecalculatedItems is
	// index-aligned with the cart by construction
	for i, item := range req.Items {
		recalc := result.RecalculatedItems[i]
		perUnit := validatedPerUnit(recalc, item)

		orderItem := models.OrderItem{
			OrderID:         order.ID,
			ProductID:       item.ProductID,
			ProductTitle:    item.ProductTitle,
			ProductSlug:     item.ProductSlug,
			VariantID:       item.VariantID,
			VariantTitle:    item.VariantTitle,
			ProductImageURL: item.ProductImageURL,
			Quantity:        item.Quantity,
			PricePerItem:    perUnit,
			TotalAmount:     perUnit * float64(item.Quantity),
		}
		if err := deps.Store.CreateOrderItem(ctx, &orderItem); err != nil {
			log.Printf("❌ order item creation failed for %s: %v", item.ProductID, err)
			return CheckoutResponse{}, &CheckoutError{Status: http.StatusInternalServerError, Message: "failed to create order items"}
		}
	}

	// 9. gateway payload, same validated per-unit prices
	sessionReq := payments.SessionRequest{
		SuccessURL:   deps.SuccessURL,
		CancelURL:    deps.CancelURL,
		CurrencyCode: string(currency),
		Customer: payments.Customer{
			Name:  req.Customer.Name,
			Email: req.Customer.Email,
			Phone: req.Customer.Phone,
		},
		Metadata: map[string]string{
			"internalOrderId": strconv.FormatUint(uint64(order.ID), 10),
			"orderRef":        order.OrderRef,
		},
	}
	for i, item := range req.Items {
		recalc := result.RecalculatedItems[i]
		li := payments.LineItem{
			PriceData: payments.PriceData{
				Currency: string(currency),
				ProductData: payments.ProductData{
					Name:     item.ProductTitle,
					Metadata: map[string]string{"productId": item.ProductID},
				},
				UnitAmount: validatedPerUnit(recalc, item),
			},
			Quantity: item.Quantity,
		}
		if item.ProductImageURL != "" {
			li.PriceData.ProductData.Images = []string{item.ProductImageURL}
		}
		if item.VariantID != "" {
			li.PriceData.ProductData.Metadata["variantId"] = item.VariantID
		}
		sessionReq.LineItems = append(sessionReq.LineItems, li)
	}

	// 10. create the session; a failure is recorded against the order so
	// the attempt stays auditable
	session, err := deps.Gateway.CreateSession(ctx, sessionReq)
	if err != nil {
		log.Printf("❌ payment session creation failed for order %d: %v", order.ID, err)
		if updErr := deps.Store.UpdateOrderPaymentSession(ctx, order.ID, "", "", "FAILED: "+err.Error()); updErr != nil {
			log.Printf("❌ could not record payment failure on order %d: %v", order.ID, updErr)
		}
		status := http.StatusInternalServerError
		if errors.Is(err, payments.ErrBadResponse) {
			status = http.StatusBadGateway
		}
		return CheckoutResponse{}, &CheckoutError{Status: status, Message: "failed to create payment session"}
	}

	if err := deps.Store.UpdateOrderPaymentSession(ctx, order.ID, session.CheckoutSessionID, session.CheckoutURL, session.RawBody); err != nil {
		log.Printf("❌ failed to attach payment session to order %d: %v", order.ID, err)
		return CheckoutResponse{}, &CheckoutError{Status: http.StatusInternalServerError, Message: "failed to record payment session"}
	}

	log.Printf("✅ order %d (%s) checked out: total %.2f %s", order.ID, order.OrderRef, totalAmount, currency)

	order.PaymentSessionID = session.CheckoutSessionID
	order.CheckoutURL = session.CheckoutURL
	orderControllers.BroadcastOrderEvent("order.created", order)

	return CheckoutResponse{CheckoutURL: session.CheckoutURL, OrderID: order.ID}, nil
}

// validatedPerUnit derives the per-unit price from a recalculated line.
// The client-price fallback should be unreachable once critical errors
// aborted the checkout, so taking it is logged as an invariant violation.
func validatedPerUnit(recalc pricing.RecalculatedItem, item pricing.CartItem) float64 {
	if recalc.ValidatedPrice > 0 && item.Quantity > 0 {
		return recalc.ValidatedPrice / float64(item.Quantity)
	}
	log.Printf("🚨 invariant violation: no validated price for %s, falling back to client price %.2f", item.ProductID, item.Price)
	return item.Price
}

// validateShape checks what binding tags cannot fully express, and keeps
// ProcessCheckout callable without an HTTP layer.
func validateShape(req CheckoutRequest) []string {
	var reasons []string
	if len(req.Items) == 0 {
		reasons = append(reasons, "cart is empty")
	}
	for i, item := range req.Items {
		if item.ProductID == "" {
			reasons = append(reasons, fmt.Sprintf("item %d: productId is required", i))
		}
		if item.ProductTitle == "" {
			reasons = append(reasons, fmt.Sprintf("item %d: productTitle is required", i))
		}
		if item.Quantity <= 0 {
			reasons = append(reasons, fmt.Sprintf("item %d: quantity must be positive", i))
		}
		if item.Price <= 0 {
			reasons = append(reasons, fmt.Sprintf("item %d: price must be positive", i))
		}
	}
	if req.Customer.Name == "" {
		reasons = append(reasons, "customer name is required")
	}
	if req.Customer.Email == "" {
		reasons = append(reasons, "customer email is required")
	}
	return reasons
}

// -------- Handlers --------

// ProcessCheckoutHandler binds the request and runs the pipeline.
func ProcessCheckoutHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
			return
		}

		resp, cerr := ProcessCheckout(c.Request.Context(), deps, req)
		if cerr != nil {
			c.JSON(cerr.Status, cerr)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}
