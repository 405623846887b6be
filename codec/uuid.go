package codec

import (
	"context"

	"github.com/google/uuid"

	toolbox "github.com/plangrid/toolbox"
	"github.com/plangrid/toolbox/messages"
	"github.com/plangrid/toolbox/rules"
)

// UUID returns a Codec that converts between canonical 8-4-4-4-12 strings and
// uuid.UUID values. Only the canonical form is accepted on decode (no braces,
// no urn: prefix); encode always emits lowercase.
func UUID() Codec[string, uuid.UUID] {
	return uuidCodec{rule: rules.IsUUID()}
}

type uuidCodec struct {
	rule toolbox.Validator
}

func (c uuidCodec) Decode(ctx context.Context, a string) (uuid.UUID, error) {
	if err := c.rule.Validate(ctx, a); err != nil {
		return uuid.Nil, err
	}
	u, err := uuid.Parse(a)
	if err != nil {
		return uuid.Nil, toolbox.Issues{{Path: "/", Code: toolbox.CodeInvalidUUID, Message: messages.InvalidUUID(), Cause: err}}
	}
	return u, nil
}

func (c uuidCodec) Encode(ctx context.Context, b uuid.UUID) (string, error) {
	s := b.String()
	if err := c.rule.Validate(ctx, s); err != nil {
		return "", err
	}
	return s, nil
}

func (uuidCodec) Format() string { return "uuid" }
