package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unimeet/unimeet-api/internal/domain/common/errorz"
)

func TestStudentEmail(t *testing.T) {
	const domain = "stu.university.edu"

	tests := []struct {
		name  string
		in    string
		want  string
		valid bool
	}{
		{name: "valid", in: "202412345678@stu.university.edu", want: "202412345678@stu.university.edu", valid: true},
		{name: "normalizes case and whitespace", in: "  202412345678@STU.University.EDU ", want: "202412345678@stu.university.edu", valid: true},
		{name: "wrong domain", in: "202412345678@gmail.com"},
		{name: "short student number", in: "12345@stu.university.edu"},
		{name: "non-numeric local part", in: "john.doe@stu.university.edu"},
		{name: "empty", in: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StudentEmail(tt.in, domain)
			if !tt.valid {
				require.ErrorIs(t, err, errorz.ErrInvalidEmail)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
