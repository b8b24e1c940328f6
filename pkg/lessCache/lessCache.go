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

package lessCache

import (
	"context"
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/das7pad/lessc-go/pkg/errors"
	"github.com/das7pad/lessc-go/pkg/less"
)

type Cache interface {
	// Compile returns a cached result while none of its imports changed.
	// hit reports whether the compilation was skipped.
	Compile(ctx context.Context, read less.ReadFunc, f string, o less.Options) (res *less.Result, hit bool, err error)
	Len() int
	Purge()
}

func New(size int) (Cache, error) {
	if size <= 0 {
		return nil, &errors.ValidationError{Msg: "cache size must be positive"}
	}
	entries, err := lru.New[string, *entry](size)
	if err != nil {
		return nil, errors.Tag(err, "init lru")
	}
	return &cache{entries: entries}, nil
}

type digest [sha256.Size]byte

type entry struct {
	result  *less.Result
	digests []digest
	missing []string
}

type cache struct {
	entries *lru.Cache[string, *entry]
	sf      singleflight.Group
}

func (c *cache) Len() int {
	return c.entries.Len()
}

func (c *cache) Purge() {
	c.entries.Purge()
}

// key identifies the output of a compilation. It is empty for options
// that carry state of the caller.
func key(f string, o less.Options) string {
	if o.Scope != nil {
		return ""
	}
	return fmt.Sprintf(
		"%s\x00%t:%t:%t:%d:%t", f, o.Minify, o.XMinify, o.Tabs, o.Spaces,
		o.FailFast,
	)
}

func (c *cache) Compile(ctx context.Context, read less.ReadFunc, f string, o less.Options) (*less.Result, bool, error) {
	k := key(f, o)
	if k == "" {
		res, err := less.Compile(ctx, read, f, o)
		return res, false, err
	}
	if e, ok := c.entries.Get(k); ok {
		if e.fresh(read) {
			if err := replay(o, e.result); err != nil {
				return nil, false, err
			}
			return e.result, true, nil
		}
		c.entries.Remove(k)
	}

	// The compile is shared with concurrent callers of the same key: it
	// must outlive the cancellation of any one of them and it prints
	// nothing itself.
	shared := o
	shared.Diagnostics = nil
	ch := c.sf.DoChan(k, func() (interface{}, error) {
		return c.compile(context.WithoutCancel(ctx), read, f, shared, k)
	})
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, false, r.Err
		}
		res := r.Val.(*less.Result)
		if err := replay(o, res); err != nil {
			return nil, false, err
		}
		return res, false, nil
	}
}

func replay(o less.Options, res *less.Result) error {
	if o.Diagnostics == nil {
		return nil
	}
	err := less.PrintDiagnostics(o.Diagnostics, res.Diagnostics, o.Color)
	if err != nil {
		return errors.Tag(err, "print diagnostics")
	}
	return nil
}

func (c *cache) compile(ctx context.Context, read less.ReadFunc, f string, o less.Options, k string) (*less.Result, error) {
	digests := make(map[string]digest)
	var missing []string
	tracked := func(name string) ([]byte, error) {
		blob, err := read(name)
		if err != nil {
			missing = append(missing, name)
		} else {
			digests[name] = sha256.Sum256(blob)
		}
		return blob, err
	}
	res, err := less.Compile(ctx, tracked, f, o)
	if err != nil {
		return nil, err
	}
	e := &entry{
		result:  res,
		digests: make([]digest, len(res.Imports)),
		missing: missing,
	}
	for i, name := range res.Imports {
		e.digests[i] = digests[name]
	}
	c.entries.Add(k, e)
	return res, nil
}

// fresh re-reads every file of the compilation and compares the digests.
// Imports that were missing must still be missing.
func (e *entry) fresh(read less.ReadFunc) bool {
	for _, name := range e.missing {
		if _, err := read(name); err == nil {
			return false
		}
	}
	for i, name := range e.result.Imports {
		blob, err := read(name)
		if err != nil {
			return false
		}
		if sha256.Sum256(blob) != e.digests[i] {
			return false
		}
	}
	return true
}
