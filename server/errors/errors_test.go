// Copyright (C) 2025 Authgate Project
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.

package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetailedError(t *testing.T) {
	err := NewDetailedError("state_mismatch").WithGUID("guid-1").WithDetail("state values differ")

	assert.Equal(t, "state_mismatch", err.Error())
	assert.Equal(t, "guid-1", err.GUID())
	assert.Equal(t, "state values differ", err.Detail())
}

func TestDetailedErrorNilSafe(t *testing.T) {
	var err *DetailedError

	assert.Nil(t, err.WithGUID("guid"))
	assert.Nil(t, err.Unwrap())
	assert.Empty(t, err.GUID())
	assert.Empty(t, err.Detail())
}
