package report

// Findings is the closing commentary on the built-in Iris dataset. It is
// fixed text and is printed as is for any table.
var Findings = []string{
	"Iris setosa has the smallest petal length and width compared to other species.",
	"Iris virginica generally has the largest measurements across most features.",
	"There is a strong positive correlation between petal length and petal width.",
	"The three species are well-separated based on petal measurements.",
	"Sepal measurements show more overlap between species than petal measurements.",
	"Iris setosa is the most distinct species and can be easily identified by its petal size.",
}
