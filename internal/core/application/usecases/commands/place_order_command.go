package commands

import (
	"errors"

	"canteen/internal/core/domain/model/kernel"
	"canteen/internal/core/domain/model/order"
	"canteen/internal/pkg/errs"
	"canteen/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// CartLine is one requested item of a placement command. The item's name
// and price are deliberately absent: the handler resolves them from the
// catalog inside the transaction, so clients cannot dictate prices.
type CartLine struct {
	ItemID   kernel.UUID
	Quantity int
}

// PlaceOrderCommand represents a customer's request to turn a cart into a
// durable order.
//
// Example:
//
//	cart := []commands.CartLine{{ItemID: chaiID, Quantity: 2}}
//	cmd, err := commands.NewPlaceOrderCommand(customerID, cart, order.PaymentModeCounter)
//	if err != nil {
//	    return fmt.Errorf("invalid cart: %w", err)
//	}
//
//	placed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
//	fmt.Printf("Order %s placed", placed.Token())
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	customerID  kernel.UUID
	cart        []CartLine
	paymentMode order.PaymentMode

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a validated placement command. The cart must
// be non-empty with positive quantities, and the payment mode must be one
// this engine can currently take.
func NewPlaceOrderCommand(
	customerID kernel.UUID,
	cart []CartLine,
	paymentMode order.PaymentMode,
) (PlaceOrderCommand, error) {
	command := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setCustomerID(customerID),
		command.setCart(cart),
		command.setPaymentMode(paymentMode),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// CustomerID returns the id of the customer placing the order.
func (c PlaceOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Cart returns the requested lines.
func (c PlaceOrderCommand) Cart() []CartLine {
	return append([]CartLine(nil), c.cart...)
}

// PaymentMode returns the requested payment mode.
func (c PlaceOrderCommand) PaymentMode() order.PaymentMode {
	return c.paymentMode
}

func (c *PlaceOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}

	c.customerID = customerID
	return nil
}

func (c *PlaceOrderCommand) setCart(cart []CartLine) error {
	if len(cart) == 0 {
		return errs.NewValueIsRequiredError("cart")
	}
	for _, line := range cart {
		if err := line.ItemID.Validate(); err != nil {
			return err
		}
		if line.Quantity < 1 || line.Quantity > order.MaxLineQuantity {
			return errs.NewValueIsOutOfRangeError("quantity", line.Quantity, 1, order.MaxLineQuantity)
		}
	}

	c.cart = append([]CartLine(nil), cart...)
	return nil
}

func (c *PlaceOrderCommand) setPaymentMode(paymentMode order.PaymentMode) error {
	if err := paymentMode.ValidateForIntake(); err != nil {
		return err
	}

	c.paymentMode = paymentMode
	return nil
}
