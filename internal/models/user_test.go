package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidUserType(t *testing.T) {
	for _, valid := range []UserType{UserTypeStudent, UserTypeDoctor, UserTypeNurse, UserTypePharmacist, UserTypeAdmin} {
		assert.True(t, ValidUserType(valid), string(valid))
	}
	assert.False(t, ValidUserType("janitor"))
	assert.False(t, ValidUserType("STUDENT"))
	assert.False(t, ValidUserType(""))
}

func TestGetFullName(t *testing.T) {
	u := &User{FirstName: "John", LastName: "Doe"}
	assert.Equal(t, "John Doe", u.GetFullName())

	u.MiddleName = "Ade"
	assert.Equal(t, "John Ade Doe", u.GetFullName())
}
