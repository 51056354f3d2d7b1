package api

import (
	"github.com/JaimeStill/promptflow/internal/prompts"
	"github.com/JaimeStill/promptflow/internal/uploads"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Prompts prompts.System
	Uploads uploads.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Prompts: prompts.New(runtime.Database.Connection(), runtime.Logger),
		Uploads: uploads.New(runtime.Storage, runtime.Logger),
	}
}
