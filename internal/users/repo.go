package users

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
)

const usersCollection = "users"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{
		fs: fs,
	}
}

// Save writes the user's profile under their uid, merging over any
// existing document.
func (r *Repo) Save(ctx context.Context, userID string, user User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.fs.Collection(usersCollection).Doc(userID).Set(ctx, user, firestore.MergeAll)
	return err
}

func (r *Repo) Get(ctx context.Context, userID string) (_ *User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc, err := r.fs.Collection(usersCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	var user User
	if err := doc.DataTo(&user); err != nil {
		return nil, fmt.Errorf("parse user %s: %w", doc.Ref.ID, err)
	}
	user.ID = doc.Ref.ID

	return &user, nil
}
