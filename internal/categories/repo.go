package categories

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/trainmate/trainmate-api/internal/telemetry/tracing"
)

const categoriesCollection = "categories"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{
		fs: fs,
	}
}

func (r *Repo) Add(ctx context.Context, category Category) (_ *Category, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.categories.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	docRef := r.fs.Collection(categoriesCollection).NewDoc()
	if _, err := docRef.Set(ctx, category); err != nil {
		return nil, fmt.Errorf("set category: %w", err)
	}

	category.ID = docRef.ID
	return &category, nil
}

// Get fetches a category by id, without any ownership check. Used when
// resolving category names referenced from exercises.
func (r *Repo) Get(ctx context.Context, id string) (_ *Category, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.categories.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	doc, err := r.fs.Collection(categoriesCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	var category Category
	if err := doc.DataTo(&category); err != nil {
		return nil, fmt.Errorf("parse category %s: %w", doc.Ref.ID, err)
	}
	category.ID = doc.Ref.ID

	return &category, nil
}

// GetForOwner fetches a category visible to the given user: either one
// of their own, or a default category without an owner.
func (r *Repo) GetForOwner(ctx context.Context, owner, id string) (*Category, error) {
	category, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if category.Owner != "" && category.Owner != owner {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Exists reports whether a category with the given id is visible to the user.
func (r *Repo) Exists(ctx context.Context, owner, id string) (bool, error) {
	_, err := r.GetForOwner(ctx, owner, id)
	if errors.Is(err, ErrCategoryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *Repo) ListByOwner(ctx context.Context, owner string) (_ []Category, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.categories.listByOwner")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	iter := r.fs.Collection(categoriesCollection).Where("owner", "==", owner).Documents(ctx)
	defer iter.Stop()

	var categories []Category
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}

		var category Category
		if err := doc.DataTo(&category); err != nil {
			return nil, fmt.Errorf("parse category %s: %w", doc.Ref.ID, err)
		}
		category.ID = doc.Ref.ID
		categories = append(categories, category)
	}

	return categories, nil
}

func (r *Repo) Update(ctx context.Context, owner, id string, updates []firestore.Update) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.categories.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	category, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if category.Owner != owner {
		return ErrCategoryNotFound
	}

	_, err = r.fs.Collection(categoriesCollection).Doc(id).Update(ctx, updates)
	return err
}

func (r *Repo) Delete(ctx context.Context, owner, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.categories.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	category, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if category.Owner != owner {
		return ErrCategoryNotFound
	}

	_, err = r.fs.Collection(categoriesCollection).Doc(id).Delete(ctx)
	return err
}
