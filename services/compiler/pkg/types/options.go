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

package types

import (
	"github.com/das7pad/lessc-go/pkg/errors"
	"github.com/das7pad/lessc-go/pkg/options/env"
)

type Options struct {
	// Root is the directory served by the css endpoint and used for
	// imports of inline sources.
	Root          string         `json:"root"`
	CacheSize     int            `json:"cache_size"`
	MaxSourceSize int64          `json:"max_source_size"`
	Defaults      CompileOptions `json:"defaults"`
}

func (o *Options) FillFromEnv(key string) {
	o.CacheSize = 128
	o.MaxSourceSize = 1024 * 1024
	o.Defaults.Spaces = 2
	env.ParseJSON(o, key)
	o.Root = env.GetString("LESSC_ROOT", o.Root)
	o.CacheSize = env.GetInt("LESSC_CACHE_SIZE", o.CacheSize)
	o.MaxSourceSize = env.GetBytes("LESSC_MAX_SOURCE_SIZE", o.MaxSourceSize)
}

func (o *Options) Validate() error {
	if o.Root == "" {
		return &errors.ValidationError{Msg: "root must be set"}
	}
	if o.CacheSize <= 0 {
		return &errors.ValidationError{
			Msg: "cache_size must be greater than 0",
		}
	}
	if o.MaxSourceSize <= 0 {
		return &errors.ValidationError{
			Msg: "max_source_size must be greater than 0",
		}
	}
	if err := o.Defaults.Validate(); err != nil {
		return errors.Tag(err, "defaults")
	}
	return nil
}
