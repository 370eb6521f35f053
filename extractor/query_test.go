package extractor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/use-agent/prodscrape/models"
)

const queryFixture = `<html><body>
<table>
  <tr><th> Brand </th><td>  &lrm;Acme&lrm; </td></tr>
  <tr><th> Colour </th><td>Red</td></tr>
</table>
<a id="byline" href="/stores/Acme/page/1">Visit the Acme Store</a>
<ul><li>   </li><li>second</li></ul>
</body></html>`

func TestQueryTable_Apply(t *testing.T) {
	doc, err := Parse(queryFixture)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	table := NewQueryTable([]FieldQuery{
		{Field: "brand", XPath: `//th[contains(text(), ' Brand ')]/following-sibling::td/text()`},
		{Field: "store", XPath: `//*[@id='byline']/@href`},
		{Field: "item", XPath: `//li/text()`},
		{Field: "missing", XPath: `//th[contains(text(), ' Weight ')]/following-sibling::td/text()`},
	})

	got := table.Apply(doc)
	want := models.Record{
		"brand": "Acme",
		"store": "/stores/Acme/page/1",
		"item":  "second",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
	if _, present := got["missing"]; present {
		t.Error("a query with no matches must leave the field absent")
	}
}

func TestQueryTable_InvalidQueryDoesNotAbortOthers(t *testing.T) {
	doc, err := Parse(queryFixture)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	table := NewQueryTable([]FieldQuery{
		{Field: "broken", XPath: `//th[`},
		{Field: "store", XPath: `//*[@id='byline']/@href`},
	})

	got := table.Apply(doc)
	if diff := cmp.Diff(models.Record{"store": "/stores/Acme/page/1"}, got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"broken", "store"}, table.Fields()); diff != "" {
		t.Errorf("Fields mismatch (-want +got):\n%s", diff)
	}
}
