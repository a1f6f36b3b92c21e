// Copyright (c) 2026, The Physics Toy Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import (
	"os"
	"path/filepath"
	"sync/atomic"

	"cogentcore.org/core/base/errors"
	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher watches a directory for .wgsl file changes and
// flags the changed file for reload. The render loop applies the
// pending reload at a frame boundary, so the pipeline is never
// rebuilt mid-frame.
type ShaderWatcher struct {
	watcher *fsnotify.Watcher
	pending atomic.Pointer[string]
}

// NewShaderWatcher starts watching the given directory for changes
// to .wgsl files. Call [ShaderWatcher.Close] when done.
func NewShaderWatcher(dir string) (*ShaderWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	sw := &ShaderWatcher{watcher: fw}
	go sw.run()
	return sw, nil
}

func (sw *ShaderWatcher) run() {
	for {
		select {
		case ev, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(ev.Name) != ".wgsl" {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				name := ev.Name
				sw.pending.Store(&name)
			}
		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			errors.Log(err)
		}
	}
}

// Apply applies any pending shader change to the given display,
// returning true if a reload happened. A file that fails to read
// or compile is logged and skipped; the prior pipelines stay live.
func (sw *ShaderWatcher) Apply(dp *Display) bool {
	name := sw.pending.Swap(nil)
	if name == nil {
		return false
	}
	code, err := os.ReadFile(*name)
	if errors.Log(err) != nil {
		return false
	}
	if errors.Log(dp.SetShaderCode(string(code))) != nil {
		return false
	}
	return true
}

func (sw *ShaderWatcher) Close() error {
	return sw.watcher.Close()
}
