package commands

import (
	"errors"
	"strings"

	"parcelflow/internal/core/domain/model/kernel"
	"parcelflow/internal/pkg/guard"
)

var ErrCreateParcelCommandIsNotConstructed = errors.New(
	"CreateParcelCommand must be created via NewCreateParcelCommand constructor",
)

// CreateParcelInput is the raw intake data as received from the boundary.
type CreateParcelInput struct {
	CreatedBy      string
	Title          string
	ParcelType     string
	TrackingID     string
	SenderName     string
	SenderRegion   string
	ReceiverName   string
	ReceiverRegion string
	Cost           string
}

// CreateParcelCommand registers a parcel at intake.
//
// Example:
//
//	cmd, err := NewCreateParcelCommand(CreateParcelInput{
//	    CreatedBy:      "sender@example.com",
//	    SenderRegion:   "Dhaka",
//	    ReceiverRegion: "Dhaka",
//	    Cost:           "100",
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid parcel data: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type CreateParcelCommand struct { //nolint:recvcheck //using for validation
	parcelID       kernel.UUID
	createdBy      kernel.Email
	senderRegion   kernel.Region
	receiverRegion kernel.Region
	cost           kernel.Money
	input          CreateParcelInput

	guard guard.ConstructorGuard
}

// NewCreateParcelCommand parses and validates intake input. All problems are
// reported together.
func NewCreateParcelCommand(input CreateParcelInput) (CreateParcelCommand, error) {
	cmd := CreateParcelCommand{
		parcelID: kernel.NewUUID(),
		input:    input,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCreatedBy(input.CreatedBy),
		cmd.setRegions(input.SenderRegion, input.ReceiverRegion),
		cmd.setCost(input.Cost),
	); err != nil {
		return CreateParcelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateParcelCommand) Validate() error {
	return c.guard.Validate(ErrCreateParcelCommandIsNotConstructed)
}

// ParcelID is generated by the constructor so retries of one command reuse it.
func (c CreateParcelCommand) ParcelID() kernel.UUID {
	return c.parcelID
}

func (c CreateParcelCommand) CreatedBy() kernel.Email {
	return c.createdBy
}

func (c CreateParcelCommand) SenderRegion() kernel.Region {
	return c.senderRegion
}

func (c CreateParcelCommand) ReceiverRegion() kernel.Region {
	return c.receiverRegion
}

func (c CreateParcelCommand) Cost() kernel.Money {
	return c.cost
}

func (c CreateParcelCommand) Title() string {
	return strings.TrimSpace(c.input.Title)
}

func (c CreateParcelCommand) ParcelType() string {
	return strings.TrimSpace(c.input.ParcelType)
}

func (c CreateParcelCommand) TrackingID() string {
	return strings.TrimSpace(c.input.TrackingID)
}

func (c CreateParcelCommand) SenderName() string {
	return strings.TrimSpace(c.input.SenderName)
}

func (c CreateParcelCommand) ReceiverName() string {
	return strings.TrimSpace(c.input.ReceiverName)
}

func (c *CreateParcelCommand) setCreatedBy(email string) error {
	parsed, err := requiredEmail("createdBy", email)
	if err != nil {
		return err
	}
	c.createdBy = parsed
	return nil
}

func (c *CreateParcelCommand) setRegions(sender, receiver string) error {
	senderRegion, senderErr := kernel.NewRegion(sender)
	receiverRegion, receiverErr := kernel.NewRegion(receiver)
	if err := errors.Join(senderErr, receiverErr); err != nil {
		return err
	}
	c.senderRegion = senderRegion
	c.receiverRegion = receiverRegion
	return nil
}

func (c *CreateParcelCommand) setCost(cost string) error {
	parsed, err := kernel.MoneyFromString(strings.TrimSpace(cost))
	if err != nil {
		return err
	}
	c.cost = parsed
	return nil
}
