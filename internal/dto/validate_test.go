package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	out := make(map[string]string, len(verr.Errors))
	for _, fe := range verr.Errors {
		out[fe.Field] = fe.Message
	}
	return out
}

func TestValidateAdoptionStatus(t *testing.T) {
	assert.NoError(t, Validate(&UpdateAdoptionStatusRequest{Status: "approved"}))

	fields := fieldsOf(t, Validate(&UpdateAdoptionStatusRequest{Status: "invalido"}))
	assert.Equal(t, "must be one of [pending approved rejected cancelled]", fields["status"])

	fields = fieldsOf(t, Validate(&UpdateAdoptionStatusRequest{}))
	assert.Equal(t, "is required", fields["status"])
}

func TestValidateCreateAdoptionNestedAnswers(t *testing.T) {
	req := &CreateAdoptionRequest{
		PetID: "4a8c3b8e-7b7a-4bb5-9d55-0bd0c4f1e0aa",
		Answers: []AnswerInput{
			{QuestionID: "f47ac10b-58cc-4372-a567-0e02b2c3d479", AnswerContent: strPtr("yes")},
			{QuestionID: "nope"},
		},
	}
	fields := fieldsOf(t, Validate(req))
	assert.Equal(t, "must be a valid UUID", fields["answers[1].question_id"])
	assert.Equal(t, "is required", fields["answers[1].answer_content"])
	assert.NotContains(t, fields, "answers[0].question_id")

	req.Answers = req.Answers[:1]
	assert.NoError(t, Validate(req))
}

func TestValidateAnswerContentRejectsEmpty(t *testing.T) {
	req := &CreateAdoptionRequest{
		PetID:   "4a8c3b8e-7b7a-4bb5-9d55-0bd0c4f1e0aa",
		Answers: []AnswerInput{{QuestionID: "f47ac10b-58cc-4372-a567-0e02b2c3d479", AnswerContent: strPtr("")}},
	}
	fields := fieldsOf(t, Validate(req))
	assert.Equal(t, "must be at least 1 characters", fields["answers[0].answer_content"])

	fields = fieldsOf(t, Validate(&UpdateAnswerRequest{AnswerContent: strPtr("")}))
	assert.Contains(t, fields, "answer_content")

	assert.NoError(t, Validate(&UpdateAnswerRequest{AnswerContent: strPtr("Sim")}))
}

func TestValidateAddress(t *testing.T) {
	valid := CreateAddressRequest{
		ZipCode:       "01310-100",
		StreetName:    "Av. Paulista",
		AddressNumber: "1578",
		Neighborhood:  "Bela Vista",
		CityName:      "São Paulo",
		StateName:     "SP",
	}
	assert.NoError(t, Validate(&valid))

	noDash := valid
	noDash.ZipCode = "01310100"
	assert.NoError(t, Validate(&noDash))

	bad := valid
	bad.ZipCode = "1310-100"
	bad.StateName = "XX"
	fields := fieldsOf(t, Validate(&bad))
	assert.Equal(t, "must match the pattern 00000-000", fields["zip_code"])
	assert.Equal(t, "must be a valid Brazilian state code", fields["state_name"])
}

func TestValidatePetAcceptsSynonyms(t *testing.T) {
	req := CreatePetRequest{
		Name: "Rex", Species: "DOG", Gender: "macho", Age: intPtr(3),
		Size: "grande", State: "RJ", City: "Niterói",
	}
	assert.NoError(t, Validate(&req))

	req.Species = "dragon"
	req.Age = intPtr(-1)
	fields := fieldsOf(t, Validate(&req))
	assert.Contains(t, fields, "species")
	assert.Equal(t, "must be greater than or equal to 0", fields["age"])
}

func TestValidatePageQuery(t *testing.T) {
	assert.NoError(t, Validate(&PageQuery{Page: 1, Limit: 100}))

	fields := fieldsOf(t, Validate(&PageQuery{Page: 0, Limit: 101}))
	assert.Contains(t, fields, "page")
	assert.Contains(t, fields, "limit")
}

func TestValidatePasswordConfirmation(t *testing.T) {
	fields := fieldsOf(t, Validate(&PasswordResetConfirmRequest{Password: "secret1", PasswordConfirmation: "secret2"}))
	assert.Equal(t, "must match password", fields["password_confirmation"])
}

func TestLoginRequiresLoginOrEmail(t *testing.T) {
	assert.NoError(t, Validate(&LoginRequest{Email: "a@b.com", Password: "x"}))
	assert.NoError(t, Validate(&LoginRequest{Login: "ana", Password: "x"}))

	fields := fieldsOf(t, Validate(&LoginRequest{Password: "x"}))
	assert.Contains(t, fields, "login")
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(21, 2, 10)
	assert.Equal(t, 3, p.Pages)
	assert.Equal(t, 0, NewPagination(0, 1, 10).Pages)
	assert.Equal(t, 1, NewPagination(100, 1, 100).Pages)
	assert.Equal(t, 10, PageQuery{Page: 2, Limit: 10}.Offset())
}

func TestPetFilterAdopted(t *testing.T) {
	assert.Nil(t, PetFilter{}.Adopted())
	assert.False(t, *PetFilter{Status: "disponivel"}.Adopted())
	assert.True(t, *PetFilter{Status: "adopted"}.Adopted())
}
