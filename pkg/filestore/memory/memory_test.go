// Copyright SummarizeME Authors
// SPDX-License-Identifier: Apache-2.0

package memory_test

import (
	"testing"

	"github.com/shahakanksha-tamu/SummarizeME/pkg/filestore"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/filestore/filestoretest"
	"github.com/shahakanksha-tamu/SummarizeME/pkg/filestore/memory"
)

func TestMemoryConformance(t *testing.T) {
	filestoretest.RunConformanceTests(t, func(t *testing.T) filestore.FileStore {
		return memory.New()
	})
}
