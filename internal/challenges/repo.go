package challenges

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"go.uber.org/multierr"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
)

const challengesCollection = "challenges"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{
		fs: fs,
	}
}

func (r *Repo) userChallenges(userID string, domain Domain) *firestore.CollectionRef {
	return r.fs.Collection(challengesCollection).Doc(userID).Collection(domain.Subcollection())
}

func (r *Repo) ensureRoot(ctx context.Context, userID string) error {
	docRef := r.fs.Collection(challengesCollection).Doc(userID)
	_, err := docRef.Get(ctx)
	if status.Code(err) == codes.NotFound {
		_, err = docRef.Set(ctx, map[string]interface{}{})
		return err
	}
	return err
}

// Create seeds one challenge document per name, all locked.
func (r *Repo) Create(ctx context.Context, userID string, domain Domain, names []string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !domain.Valid() {
		return ErrUnknownDomain
	}

	if err := r.ensureRoot(ctx, userID); err != nil {
		return fmt.Errorf("ensure challenges root: %w", err)
	}

	bw := r.fs.BulkWriter(ctx)
	jobs := make(map[string]*firestore.BulkWriterJob, len(names))
	for _, name := range names {
		docRef := r.userChallenges(userID, domain).NewDoc()
		job, err := bw.Set(docRef, Challenge{Name: name, State: false})
		if err != nil {
			return fmt.Errorf("seed challenge %q: %w", name, err)
		}
		jobs[name] = job
	}
	bw.End()

	// write errors only surface through the job results
	var errs error
	for name, job := range jobs {
		if _, err := job.Results(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("seed challenge %q: %w", name, err))
		}
	}

	return errs
}

func (r *Repo) List(ctx context.Context, userID string, domain Domain) (_ []Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !domain.Valid() {
		return nil, ErrUnknownDomain
	}

	iter := r.userChallenges(userID, domain).Documents(ctx)
	defer iter.Stop()

	var list []Challenge
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var challenge Challenge
		if err := doc.DataTo(&challenge); err != nil {
			return nil, fmt.Errorf("parse challenge %s: %w", doc.Ref.ID, err)
		}
		challenge.ID = doc.Ref.ID
		list = append(list, challenge)
	}

	return list, nil
}

// Complete flips the named challenge to unlocked. Reports false
// without writing when it is unlocked already.
func (r *Repo) Complete(ctx context.Context, userID string, domain Domain, name string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if !domain.Valid() {
		return false, ErrUnknownDomain
	}

	iter := r.userChallenges(userID, domain).Where("challenge", "==", name).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return false, ErrChallengeNotFound
	}
	if err != nil {
		return false, err
	}

	var challenge Challenge
	if err := doc.DataTo(&challenge); err != nil {
		return false, fmt.Errorf("parse challenge %s: %w", doc.Ref.ID, err)
	}
	if challenge.State {
		return false, nil
	}

	if _, err := doc.Ref.Update(ctx, []firestore.Update{
		{Path: "state", Value: true},
	}); err != nil {
		return false, err
	}

	return true, nil
}
