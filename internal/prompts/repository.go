package prompts

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/promptflow/pkg/query"
	"github.com/JaimeStill/promptflow/pkg/repository"
)

const updatePromptSQL = `
	UPDATE prompts SET
		model        = CASE WHEN $1 THEN $2 ELSE model END,
		mode         = CASE WHEN $3 THEN $4 ELSE mode END,
		category     = CASE WHEN $5 THEN $6 ELSE category END,
		author       = CASE WHEN $7 THEN $8 ELSE author END,
		headline     = CASE WHEN $9 THEN $10 ELSE headline END,
		description  = CASE WHEN $11 THEN $12 ELSE description END,
		prompt_text  = CASE WHEN $13 THEN $14 ELSE prompt_text END,
		effect_image = CASE WHEN $15 THEN $16 ELSE effect_image END
	WHERE id = $17`

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a prompt repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "prompts"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) List(ctx context.Context, filters Filters) ([]Prompt, error) {
	qb := query.NewBuilder(projection, defaultSort...)
	filters.Apply(qb)

	q, args := qb.Build()
	prompts, err := repository.QueryMany(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}

	if len(prompts) == 0 {
		return prompts, nil
	}

	ids := make([]int64, len(prompts))
	for i, p := range prompts {
		ids[i] = p.ID
	}

	iq, iargs := query.
		NewBuilder(imageProjection, imageSort...).
		WhereAny("PromptID", ids).
		Build()

	images, err := repository.QueryMany(ctx, r.db, iq, iargs, scanImage)
	if err != nil {
		return nil, fmt.Errorf("query prompt images: %w", err)
	}

	attachImages(prompts, images)
	return prompts, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Prompt, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPrompt)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound)
	}

	images, err := r.images(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	orderImages(images)
	p.Images = images
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	id, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		return r.insert(ctx, tx, cmd)
	})
	if err != nil {
		return 0, err
	}

	r.logger.Info("prompt created", "id", id, "category", cmd.Category, "images", len(cmd.Images))
	return id, nil
}

func (r *repo) CreateBatch(ctx context.Context, cmds []CreateCommand) ([]int64, error) {
	for i, cmd := range cmds {
		if err := cmd.Validate(); err != nil {
			return nil, fmt.Errorf("prompt %d: %w", i, err)
		}
	}

	ids, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) ([]int64, error) {
		ids := make([]int64, len(cmds))
		for i, cmd := range cmds {
			id, err := r.insert(ctx, tx, cmd)
			if err != nil {
				return nil, fmt.Errorf("prompt %d: %w", i, err)
			}
			ids[i] = id
		}
		return ids, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("prompts created", "count", len(ids))
	return ids, nil
}

func (r *repo) Update(ctx context.Context, id int64, cmd UpdateCommand) error {
	err := repository.InTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := r.lock(ctx, tx, id); err != nil {
			return err
		}

		if err := cmd.Validate(); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, updatePromptSQL, updateArgs(id, cmd)...); err != nil {
			return fmt.Errorf("update prompt: %w", err)
		}

		if cmd.Images.Set {
			return r.replaceImages(ctx, tx, id, cmd.Images.Value)
		}
		return nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound)
	}

	r.logger.Info("prompt updated", "id", id, "images_replaced", cmd.Images.Set)
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	err := repository.InTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"UPDATE prompts SET primary_image_id = NULL WHERE id = $1",
			id,
		); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, "DELETE FROM prompts WHERE id = $1", id)
		return err
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound)
	}

	r.logger.Info("prompt deleted", "id", id)
	return nil
}

func (r *repo) Categories(ctx context.Context) ([]string, error) {
	categories, err := repository.QueryMany(
		ctx, r.db,
		`SELECT category FROM prompts GROUP BY category ORDER BY category COLLATE "C"`,
		nil,
		scanString,
	)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	return categories, nil
}

func (r *repo) AddImages(ctx context.Context, id int64, cmd AddImagesCommand) error {
	err := repository.InTx(ctx, r.db, func(tx *sql.Tx) error {
		if err := r.lock(ctx, tx, id); err != nil {
			return err
		}

		if err := cmd.Validate(); err != nil {
			return err
		}

		return r.insertImages(ctx, tx, id, cmd.Images)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound)
	}

	r.logger.Info("prompt images added", "id", id, "count", len(cmd.Images))
	return nil
}

func (r *repo) Images(ctx context.Context, id int64) ([]Image, error) {
	var exists bool
	if err := r.db.QueryRowContext(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM prompts WHERE id = $1)",
		id,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check prompt: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	images, err := r.images(ctx, r.db, id)
	if err != nil {
		return nil, err
	}

	orderImages(images)
	return images, nil
}

func (r *repo) images(ctx context.Context, q repository.Querier, promptID int64) ([]Image, error) {
	iq, args := query.
		NewBuilder(imageProjection, imageSort...).
		WhereEquals("PromptID", promptID).
		Build()

	images, err := repository.QueryMany(ctx, q, iq, args, scanImage)
	if err != nil {
		return nil, fmt.Errorf("query prompt images: %w", err)
	}
	return images, nil
}

// lock confirms the prompt exists and holds its row for the rest of the transaction.
func (r *repo) lock(ctx context.Context, tx *sql.Tx, id int64) error {
	_, err := repository.QueryOne(
		ctx, tx,
		"SELECT id FROM prompts WHERE id = $1 FOR UPDATE",
		[]any{id},
		scanID,
	)
	return err
}

// insertImages appends paths in order and makes the first inserted image the
// prompt's primary. An empty paths list changes nothing.
func (r *repo) insertImages(ctx context.Context, tx *sql.Tx, promptID int64, paths []string) error {
	var first int64
	for i, path := range paths {
		id, err := repository.QueryOne(
			ctx, tx,
			"INSERT INTO prompt_images (prompt_id, image_path) VALUES ($1, $2) RETURNING id",
			[]any{promptID, path},
			scanID,
		)
		if err != nil {
			return fmt.Errorf("insert image %d: %w", i, err)
		}
		if i == 0 {
			first = id
		}
	}

	if len(paths) == 0 {
		return nil
	}

	if _, err := tx.ExecContext(
		ctx,
		"UPDATE prompts SET primary_image_id = $1 WHERE id = $2",
		first, promptID,
	); err != nil {
		return fmt.Errorf("set primary image: %w", err)
	}
	return nil
}

// insert writes one prompt and its images inside tx.
func (r *repo) insert(ctx context.Context, tx *sql.Tx, cmd CreateCommand) (int64, error) {
	q := `
		INSERT INTO prompts (model, mode, category, author, headline, description, prompt_text, effect_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	args := []any{
		cmd.Model, cmd.Mode, cmd.Category, cmd.Author,
		cmd.Headline, cmd.Description, cmd.PromptText, cmd.EffectImage,
	}

	id, err := repository.QueryOne(ctx, tx, q, args, scanID)
	if err != nil {
		return 0, fmt.Errorf("insert prompt: %w", err)
	}

	if err := r.insertImages(ctx, tx, id, cmd.Images); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) replaceImages(ctx context.Context, tx *sql.Tx, promptID int64, paths []string) error {
	if _, err := tx.ExecContext(
		ctx,
		"UPDATE prompts SET primary_image_id = NULL WHERE id = $1",
		promptID,
	); err != nil {
		return fmt.Errorf("clear primary image: %w", err)
	}

	if _, err := tx.ExecContext(
		ctx,
		"DELETE FROM prompt_images WHERE prompt_id = $1",
		promptID,
	); err != nil {
		return fmt.Errorf("delete images: %w", err)
	}

	return r.insertImages(ctx, tx, promptID, paths)
}

func updateArgs(id int64, cmd UpdateCommand) []any {
	return []any{
		cmd.Model.Set, cmd.Model.Value,
		cmd.Mode.Set, cmd.Mode.Value,
		cmd.Category.Set, cmd.Category.Value,
		cmd.Author.Set, cmd.Author.Value,
		cmd.Headline.Set, cmd.Headline.Value,
		cmd.Description.Set, cmd.Description.Value,
		cmd.PromptText.Set, cmd.PromptText.Value,
		cmd.EffectImage.Set, cmd.EffectImage.Value,
		id,
	}
}

func scanID(s repository.Scanner) (int64, error) {
	var id int64
	err := s.Scan(&id)
	return id, err
}

func scanString(s repository.Scanner) (string, error) {
	var v string
	err := s.Scan(&v)
	return v, err
}
