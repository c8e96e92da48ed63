package oci_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/reinhard/internal/adapters/oci"
)

func TestQualifyRepository(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Official Image", in: "python", want: "registry-1.docker.io/library/python"},
		{name: "Hub Namespace", in: "acme/base", want: "registry-1.docker.io/acme/base"},
		{name: "Registry Host", in: "ghcr.io/acme/base", want: "ghcr.io/acme/base"},
		{name: "Host With Port", in: "registry:5000/base", want: "registry:5000/base"},
		{name: "Localhost", in: "localhost/base", want: "localhost/base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, oci.QualifyRepository(tt.in))
		})
	}
}
