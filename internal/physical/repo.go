package physical

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
)

const (
	physicalDataCollection  = "physical_data"
	userPhysicalDataSubcoll = "user_physical_data"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{
		fs: fs,
	}
}

func (r *Repo) userEntries(userID string) *firestore.CollectionRef {
	return r.fs.Collection(physicalDataCollection).Doc(userID).Collection(userPhysicalDataSubcoll)
}

func (r *Repo) EnsureRoot(ctx context.Context, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.physical.ensureRoot")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docRef := r.fs.Collection(physicalDataCollection).Doc(userID)
	_, err = docRef.Get(ctx)
	if status.Code(err) == codes.NotFound {
		_, err = docRef.Set(ctx, map[string]interface{}{})
		return err
	}
	return err
}

// Upsert writes the entry under its date, replacing any measurement
// already recorded for that day.
func (r *Repo) Upsert(ctx context.Context, userID string, entry Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.physical.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := r.EnsureRoot(ctx, userID); err != nil {
		return fmt.Errorf("ensure physical data root: %w", err)
	}

	_, err = r.userEntries(userID).Doc(entry.DocID()).Set(ctx, entry)
	return err
}

func (r *Repo) List(ctx context.Context, userID string) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.physical.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.collect(r.userEntries(userID).Documents(ctx))
}

func (r *Repo) ListSince(ctx context.Context, userID string, since time.Time) (_ []Entry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.physical.listSince")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.collect(r.userEntries(userID).Where("date", ">=", since).Documents(ctx))
}

func (r *Repo) collect(iter *firestore.DocumentIterator) ([]Entry, error) {
	defer iter.Stop()

	var entries []Entry
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var entry Entry
		if err := doc.DataTo(&entry); err != nil {
			return nil, fmt.Errorf("parse physical data entry %s: %w", doc.Ref.ID, err)
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
