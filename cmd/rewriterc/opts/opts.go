// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package opts

import (
	"context"
	"io"

	"github.com/walteh/rewriterc/pkg/config"
	"github.com/walteh/rewriterc/pkg/log"
	"github.com/walteh/rewriterc/pkg/operation"
	"github.com/walteh/rewriterc/pkg/status"
	"github.com/walteh/rewriterc/pkg/text"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// flags
	ConfigFile string
	Target     string
	Preset     string
	Backup     bool
	Debug      bool
	LogFile    string

	// filled in before any command runs
	Config     *config.Config
	Rules      []text.Rule
	Files      *status.Manager
	UserLogger *log.UserLogger

	// closed once the command finishes
	LogCloser io.Closer
}

// 🔧 OperationOptions returns the options every operation is built from,
// with the console logger taken from ctx
func (o *RootOpts) OperationOptions(ctx context.Context) operation.Options {
	return operation.Options{
		Config:   o.Config,
		Rules:    o.Rules,
		Rewriter: text.NewRegexRewriter(),
		Files:    o.Files,
		Logger:   log.FromContext(ctx),
	}
}
