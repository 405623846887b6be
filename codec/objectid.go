package codec

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"

	toolbox "github.com/plangrid/toolbox"
	"github.com/plangrid/toolbox/messages"
	"github.com/plangrid/toolbox/rules"
)

// ObjectID returns a Codec that converts between 24-character hex strings and
// bson.ObjectID values.
func ObjectID() Codec[string, bson.ObjectID] {
	return objectIDCodec{rule: rules.IsObjectID()}
}

type objectIDCodec struct {
	rule toolbox.Validator
}

func (c objectIDCodec) Decode(ctx context.Context, a string) (bson.ObjectID, error) {
	if err := c.rule.Validate(ctx, a); err != nil {
		return bson.NilObjectID, err
	}
	id, err := bson.ObjectIDFromHex(a)
	if err != nil {
		return bson.NilObjectID, toolbox.Issues{{Path: "/", Code: toolbox.CodeInvalidObjectID, Message: messages.InvalidObjectID(), Cause: err}}
	}
	return id, nil
}

func (c objectIDCodec) Encode(ctx context.Context, b bson.ObjectID) (string, error) {
	s := b.Hex()
	if err := c.rule.Validate(ctx, s); err != nil {
		return "", err
	}
	return s, nil
}

func (objectIDCodec) Format() string { return "objectid" }
