package xmldoc_test

import (
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gobd/apidocs/openapi"
	"github.com/Gobd/apidocs/xmldoc"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Order struct {
	CustomerName string  `json:"customer_name"`
	Total        float64 `json:"total"`
	Note         string  `json:"note"`
}

type Customer struct {
	Email string `json:"email"`
}

func loadAll(t *testing.T) *xmldoc.Comments {
	t.Helper()
	paths, err := xmldoc.Find("testdata/bin", xmldoc.DefaultPatterns...)
	require.NoError(t, err)

	c := xmldoc.New()
	for _, p := range paths {
		loaded, err := xmldoc.Load(p)
		require.NoError(t, err)
		c.Merge(loaded)
	}
	return c
}

func TestLoad(t *testing.T) {
	c, err := xmldoc.Load(filepath.Join("testdata", "bin", "Shop.WebApi.xml"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Shop.WebApi"}, c.Assemblies)
	assert.Equal(t, 4, c.Len())

	m, ok := c.Member("T:Shop.WebApi.Models.Order")
	require.True(t, ok)
	assert.Equal(t, "An order placed by a customer.", m.Summary)
	assert.Equal(t, byte(xmldoc.KindType), m.Kind)
}

func TestLoad_InlineTags(t *testing.T) {
	c := loadAll(t)

	total, ok := c.Property("Order", "Total")
	require.True(t, ok)
	assert.Equal(t, "Total amount in Decimal units.", total.Summary)

	op, ok := c.Operation("createOrder")
	require.True(t, ok)
	assert.Equal(t, "Creates an order.", op.Summary)
	assert.Equal(t, "Returns the stored order & its id.", op.Remarks)
	assert.Equal(t, "The created order.", op.Returns)
	assert.Equal(t, "The order to store.", op.Params["order"])
}

func TestLoad_Missing(t *testing.T) {
	_, err := xmldoc.Load(filepath.Join(t.TempDir(), "Nope.WebApi.xml"))
	assert.Error(t, err)
}

func TestParse_Malformed(t *testing.T) {
	_, err := xmldoc.Parse(strings.NewReader(`<doc><members><member name="T:Broken">`))
	assert.Error(t, err)
}

func TestParse_SkipsUnprefixedNames(t *testing.T) {
	c, err := xmldoc.Parse(strings.NewReader(`<doc><members><member name="Order"><summary>x</summary></member></members></doc>`))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestMerge_AcrossFiles(t *testing.T) {
	c := loadAll(t)

	assert.ElementsMatch(t, []string{"Shop.WebApi", "Shop.Library.Contracts"}, c.Assemblies)

	cust, ok := c.Type("Customer")
	require.True(t, ok)
	assert.Equal(t, "A customer record.", cust.Summary)

	email, ok := c.Property("Customer", "Email")
	require.True(t, ok)
	assert.Equal(t, "Contact address.", email.Summary)

	_, ok = c.Type("Invoice")
	assert.False(t, ok)
}

func TestNilComments(t *testing.T) {
	var c *xmldoc.Comments
	assert.Equal(t, 0, c.Len())
	_, ok := c.Type("Order")
	assert.False(t, ok)
}

func TestSchemaCustomizer(t *testing.T) {
	c := loadAll(t)

	ref, err := openapi.NewSchemaRefForValue(Order{}, c.SchemaCustomizer())
	require.NoError(t, err)

	assert.Equal(t, "An order placed by a customer.", ref.Value.Description)
	assert.Equal(t, "Name of the customer.", ref.Value.Properties["customer_name"].Value.Description)
	assert.Equal(t, "Total amount in Decimal units.", ref.Value.Properties["total"].Value.Description)
	assert.Empty(t, ref.Value.Properties["note"].Value.Description)

	ref, err = openapi.NewSchemaRefForValue(&Customer{}, c.SchemaCustomizer())
	require.NoError(t, err)
	assert.Equal(t, "Contact address.", ref.Value.Properties["email"].Value.Description)
}

func TestApplyOperation(t *testing.T) {
	c := loadAll(t)

	op, err := openapi.NewOperation("CreateOrder", openapi.Endpoint{Request: Order{}})
	require.NoError(t, err)
	c.ApplyOperation(op)
	assert.Equal(t, "Creates an order.", op.Summary)
	assert.Equal(t, "Returns the stored order & its id.", op.Description)

	kept := &openapi3.Operation{OperationID: "createOrder", Summary: "Custom"}
	c.ApplyOperation(kept)
	assert.Equal(t, "Custom", kept.Summary)

	doc := openapi.DocBase(&openapi3.Info{Title: "t", Version: "1"})
	openapi.AddPath(doc, "/orders", http.MethodPost, op)
	assert.Equal(t, "Creates an order.", doc.Paths.Value("/orders").Post.Summary)
}
