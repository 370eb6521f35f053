package amazon

import (
	"regexp"

	"github.com/andybalholm/cascadia"

	"github.com/use-agent/prodscrape/extractor"
	"github.com/use-agent/prodscrape/models"
)

// imageBlockMarker identifies the script that carries the image gallery state.
const imageBlockMarker = "ImageBlockBTF"

var (
	scriptMatcher = cascadia.MustCompile(`script[type="text/javascript"]`)

	// parseJSONCall captures the object literal handed to jQuery.parseJSON.
	parseJSONCall = regexp.MustCompile(`jQuery\.parseJSON\('(\{.*\})'\);`)
)

// fieldQueries are evaluated against the detail page in this order.
var fieldQueries = []extractor.FieldQuery{
	{Field: models.FieldBrand, XPath: `//th[contains(text(), ' Brand ')]/following-sibling::td/text()`},
	{Field: models.FieldMonthlySales, XPath: `//*[contains(text(), 'in past month')]/../span[@class]/text()`},
	{Field: models.FieldRating, XPath: `//span[@class='a-size-small a-color-base'][following-sibling::i]/text()`},
	{Field: models.FieldReviewsCount, XPath: `//span[@id='acrCustomerReviewText']/@aria-label`},
	{Field: models.FieldPrice, XPath: `//div[@aria-labelledby='Product 1']//*[@class='a-offscreen']/text()`},
	{Field: models.FieldSellerName, XPath: `//th[contains(text(), ' Manufacturer ')]/following-sibling::td/text()`},
	{Field: models.FieldSellerID, XPath: `//*[@id='bylineInfo']/@href`},
}
