package prompts

import "context"

// System defines the public contract for prompt domain operations.
type System interface {
	Handler() *Handler

	List(ctx context.Context, filters Filters) ([]Prompt, error)
	Find(ctx context.Context, id int64) (*Prompt, error)
	Create(ctx context.Context, cmd CreateCommand) (int64, error)
	// CreateBatch validates every command, then inserts them all in one
	// transaction. Either every prompt is stored or none is.
	CreateBatch(ctx context.Context, cmds []CreateCommand) ([]int64, error)
	Update(ctx context.Context, id int64, cmd UpdateCommand) error
	Delete(ctx context.Context, id int64) error
	// Categories returns distinct categories in byte order, so uppercase
	// sorts before lowercase regardless of the database collation.
	Categories(ctx context.Context) ([]string, error)
	AddImages(ctx context.Context, id int64, cmd AddImagesCommand) error
	Images(ctx context.Context, id int64) ([]Image, error)
}
