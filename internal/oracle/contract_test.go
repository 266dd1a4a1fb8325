package oracle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ContractTestSuite struct {
	suite.Suite
}

func TestContractTestSuite(t *testing.T) {
	suite.Run(t, new(ContractTestSuite))
}

func (s *ContractTestSuite) TestDecode_FullRecipe() {
	raw := `{
		"is_recipe": true,
		"title": "Shakshuka",
		"description": "Eggs poached in spiced tomato sauce.",
		"ingredients": [
			"2 tbsp olive oil",
			{"name": "eggs", "quantity": 4, "unit": ""},
			{"name": "crushed tomatoes", "quantity": "800", "unit": "g"}
		],
		"instructions_list": ["Heat the oil.", "Add tomatoes and simmer.", "Crack in the eggs."],
		"serves": 2
	}`

	res, err := Decode(raw)

	s.Require().NoError(err)
	s.Equal("Shakshuka", res.Title)
	s.Equal("Eggs poached in spiced tomato sauce.", res.Description)
	s.Require().Len(res.Ingredients, 3)

	s.False(res.Ingredients[0].Structured)
	s.Equal("2 tbsp olive oil", res.Ingredients[0].Text)

	s.True(res.Ingredients[1].Structured)
	s.Equal("eggs", res.Ingredients[1].Name)
	s.InDelta(4.0, res.Ingredients[1].Quantity, 0.0001)

	s.True(res.Ingredients[2].Structured)
	s.InDelta(800.0, res.Ingredients[2].Quantity, 0.0001)
	s.Equal("g", res.Ingredients[2].Unit)

	s.Len(res.Instructions, 3)
	s.Equal(float64(2), res.Serves.Value())
}

func (s *ContractTestSuite) TestDecode_FencedResponse() {
	raw := "```json\n{\"is_recipe\": true, \"title\": \"Toast\", \"ingredients\": [\"1 slice bread\"], \"instructions_list\": [\"Toast it.\"]}\n```"

	res, err := Decode(raw)

	s.Require().NoError(err)
	s.Equal("Toast", res.Title)
}

func (s *ContractTestSuite) TestDecode_BareFence() {
	raw := "```\n{\"is_recipe\": true, \"ingredients\": [\"salt\"], \"instructions_list\": []}\n```"

	res, err := Decode(raw)

	s.Require().NoError(err)
	s.Len(res.Ingredients, 1)
}

func (s *ContractTestSuite) TestDecode_ProseAroundJSON() {
	raw := `Here is the extraction you asked for:
{"is_recipe": true, "title": "Soup", "ingredients": ["1 onion"], "instructions_list": ["Simmer."]}
Let me know if you need anything else!`

	res, err := Decode(raw)

	s.Require().NoError(err)
	s.Equal("Soup", res.Title)
}

func (s *ContractTestSuite) TestDecode_MissingIsRecipe() {
	for _, raw := range []string{`{}`, `{"title": "Soup"}`} {
		res, err := Decode(raw)

		s.Nil(res)
		s.ErrorIs(err, ErrBadResponse)
		s.False(IsRejection(err))
	}
}

func (s *ContractTestSuite) TestDecode_NoJSONObject() {
	res, err := Decode("I cannot extract a recipe from this page.")

	s.Nil(res)
	s.ErrorIs(err, ErrBadResponse)
}

func (s *ContractTestSuite) TestDecode_MalformedJSON() {
	res, err := Decode(`{"is_recipe": tru}`)

	s.Nil(res)
	s.ErrorIs(err, ErrBadResponse)
}

func (s *ContractTestSuite) TestDecode_Rejection() {
	res, err := Decode(`{"is_recipe": false, "reason": "this is a login page"}`)

	s.Nil(res)
	s.True(IsRejection(err))
	s.NotErrorIs(err, ErrBadResponse)

	var rej *RejectionError
	s.Require().ErrorAs(err, &rej)
	s.Equal("this is a login page", rej.Reason)
}

func (s *ContractTestSuite) TestDecode_RejectionWithoutReason() {
	_, err := Decode(`{"is_recipe": false}`)

	var rej *RejectionError
	s.Require().ErrorAs(err, &rej)
	s.Equal("no reason given", rej.Reason)
}

func (s *ContractTestSuite) TestDecode_AcceptedButEmpty() {
	res, err := Decode(`{"is_recipe": true, "title": "Ghost Recipe"}`)

	s.Nil(res)
	s.True(IsRejection(err))
	s.Contains(err.Error(), "no usable content")
}

func (s *ContractTestSuite) TestDecode_InstructionsOnlyIsUsable() {
	res, err := Decode(`{"is_recipe": true, "title": "Boiled Egg", "instructions_list": ["Boil for 7 minutes."]}`)

	s.Require().NoError(err)
	s.Empty(res.Ingredients)
	s.Len(res.Instructions, 1)
}

func (s *ContractTestSuite) TestDecode_ServesAsString() {
	res, err := Decode(`{"is_recipe": true, "serves": "4 servings", "ingredients": ["1 egg"], "instructions_list": []}`)

	s.Require().NoError(err)
	s.Equal("4 servings", res.Serves.Value())
}

func (s *ContractTestSuite) TestIsRejection_WrappedError() {
	err := errors.Join(errors.New("outer"), &RejectionError{Reason: "ad page"})

	s.True(IsRejection(err))
	s.False(IsRejection(errors.New("plain")))
	s.False(IsRejection(nil))
}
