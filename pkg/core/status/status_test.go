// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package status

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestKinds(t *testing.T) {
	err := Errorf(Layout, "cannot extend padding of %s", "locked tensor")
	require.Equal(t, Layout, KindOf(err))
	require.True(t, Is(err, Layout))
	require.False(t, Is(err, Shape))
	require.Equal(t, "layout error: cannot extend padding of locked tensor", err.Error())

	wrapped := errors.Wrapf(err, "while configuring %q", "Copy")
	require.Equal(t, Layout, KindOf(wrapped))
	require.Contains(t, wrapped.Error(), "while configuring \"Copy\"")

	// The stack trace is available with %+v.
	require.Contains(t, fmt.Sprintf("%+v", err), "status_test.go")

	require.Equal(t, Unknown, KindOf(errors.New("plain")))
	require.Equal(t, Unknown, KindOf(nil))
	require.False(t, Is(nil, Unknown))
	require.Equal(t, "Kind(99)", Kind(99).String())
}
