// lessc-go, a LESS to CSS compiler in Go
// Copyright (C) 2023 Jakob Ackermann <das7pad@outlook.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package compiler

import (
	"context"
	"os"
	"path"
	"path/filepath"

	"github.com/das7pad/lessc-go/pkg/errors"
	"github.com/das7pad/lessc-go/pkg/less"
	"github.com/das7pad/lessc-go/pkg/lessCache"
	"github.com/das7pad/lessc-go/services/compiler/pkg/types"
)

type Manager interface {
	Compile(ctx context.Context, request *types.CompileRequest, response *types.CompileResponse) error
	GetCSS(ctx context.Context, p types.SourcePath, o types.CompileOptions) (string, bool, error)
	Purge()
}

func New(options *types.Options) (Manager, error) {
	if err := options.Validate(); err != nil {
		return nil, errors.Tag(err, "invalid options")
	}
	root, err := filepath.Abs(options.Root)
	if err != nil {
		return nil, errors.Tag(err, "resolve root")
	}
	c, err := lessCache.New(options.CacheSize)
	if err != nil {
		return nil, err
	}
	return &manager{root: root, cache: c}, nil
}

type manager struct {
	root  string
	cache lessCache.Cache
}

// readRoot reads a slash separated name below the root. Leading parent
// references are dropped by cleaning the name as an absolute path.
func (m *manager) readRoot(name string) ([]byte, error) {
	name = path.Clean("/" + name)
	return os.ReadFile(filepath.Join(m.root, filepath.FromSlash(name)))
}

func (m *manager) Compile(ctx context.Context, request *types.CompileRequest, response *types.CompileResponse) error {
	if err := request.Validate(); err != nil {
		return err
	}
	entry := string(request.File)
	read := func(name string) ([]byte, error) {
		if name == entry {
			return []byte(request.Source), nil
		}
		return m.readRoot(name)
	}
	res, err := less.Compile(ctx, read, entry, request.Options.Less())
	if err != nil {
		return asUnprocessable(err)
	}
	response.FromResult(res)
	return nil
}

func (m *manager) GetCSS(ctx context.Context, p types.SourcePath, o types.CompileOptions) (string, bool, error) {
	if err := p.Validate(); err != nil {
		return "", false, err
	}
	if err := o.Validate(); err != nil {
		return "", false, err
	}
	res, hit, err := m.cache.Compile(ctx, m.readRoot, string(p), o.Less())
	if err != nil {
		return "", false, asUnprocessable(err)
	}
	return res.CSS, hit, nil
}

func (m *manager) Purge() {
	m.cache.Purge()
}

// asUnprocessable flags errors in the user provided source.
func asUnprocessable(err error) error {
	var lexErr *less.LexError
	var depthErr *less.ImportDepthError
	var compileErr *less.CompilationError
	var nameErr *less.NameError
	switch {
	case errors.As(err, &lexErr),
		errors.As(err, &depthErr),
		errors.As(err, &compileErr),
		errors.As(err, &nameErr):
		return &errors.UnprocessableEntityError{Msg: err.Error()}
	default:
		return err
	}
}
