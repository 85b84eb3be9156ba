package submission_test

import (
	"testing"

	"github.com/ArgyPorgy/eigentribe/internal/domain/submission"
	. "github.com/smartystreets/goconvey/convey"
)

func validCandidate() submission.Candidate {
	return submission.Candidate{
		SubmitterName: "Jane Doe",
		WalletAddress: "0x1234567890123456789012",
		Link:          "https://x.com/jane/status/1",
		ContentTags:   []string{submission.TagThread},
	}
}

func TestValidate(t *testing.T) {
	Convey("Given a fully valid candidate", t, func() {
		c := validCandidate()

		Convey("Then validation should pass", func() {
			So(submission.Validate(c), ShouldBeNil)
		})
	})

	Convey("Given candidates with invalid names", t, func() {
		for _, name := range []string{"", "   ", "Jane123", "J@ne", "Jane_Doe"} {
			c := validCandidate()
			c.SubmitterName = name

			Convey("Then name "+name+" should fail on the name field", func() {
				err := submission.Validate(c)
				So(err, ShouldNotBeNil)
				var fe *submission.FieldError
				So(err, ShouldHaveSameTypeAs, fe)
				So(err.(*submission.FieldError).Field, ShouldEqual, "name")
				So(err.Error(), ShouldEqual, "Name must contain only letters and spaces.")
			})
		}
	})

	Convey("Given names with letters and whitespace only", t, func() {
		for _, name := range []string{"Jane", "Jane Doe", "  Jane  ", "a b c"} {
			c := validCandidate()
			c.SubmitterName = name

			Convey("Then name "+name+" should pass", func() {
				So(submission.Validate(c), ShouldBeNil)
			})
		}
	})

	Convey("Given links in various shapes", t, func() {
		Convey("Then scheme-less domains pass the syntactic check", func() {
			c := validCandidate()
			c.Link = "x.com/jane/status/1"
			So(submission.Validate(c), ShouldBeNil)
		})

		Convey("Then values without a dotted host fail on the link field", func() {
			c := validCandidate()
			c.Link = "not a url"
			err := submission.Validate(c)
			So(err, ShouldNotBeNil)
			So(err.(*submission.FieldError).Field, ShouldEqual, "link")
		})
	})

	Convey("Given a candidate with no content tags", t, func() {
		c := validCandidate()
		c.ContentTags = nil

		Convey("Then it should fail on the contentTags field", func() {
			err := submission.Validate(c)
			So(err, ShouldNotBeNil)
			So(err.(*submission.FieldError).Field, ShouldEqual, "contentTags")
		})
	})

	Convey("Given a candidate with an unknown tag", t, func() {
		c := validCandidate()
		c.ContentTags = []string{"Podcast"}

		Convey("Then it should fail on the contentTags field", func() {
			err := submission.Validate(c)
			So(err, ShouldNotBeNil)
			So(err.(*submission.FieldError).Field, ShouldEqual, "contentTags")
		})
	})

	Convey("Given a candidate with a blank wallet", t, func() {
		c := validCandidate()
		c.WalletAddress = "   "

		Convey("Then it should fail on the walletAddress field", func() {
			err := submission.Validate(c)
			So(err, ShouldNotBeNil)
			So(err.(*submission.FieldError).Field, ShouldEqual, "walletAddress")
		})
	})

	Convey("Given a candidate failing several rules", t, func() {
		c := submission.Candidate{SubmitterName: "1337", Link: "nope", WalletAddress: ""}

		Convey("Then only the first failing field is reported", func() {
			err := submission.Validate(c)
			So(err, ShouldNotBeNil)
			So(err.(*submission.FieldError).Field, ShouldEqual, "name")
		})
	})
}

func TestTags(t *testing.T) {
	Convey("Given the tag vocabulary", t, func() {
		tags := submission.Tags()

		Convey("Then it should contain the six fixed tags", func() {
			So(len(tags), ShouldEqual, 6)
			for _, tag := range tags {
				So(submission.IsKnownTag(tag), ShouldBeTrue)
			}
		})

		Convey("And unknown values should not be recognized", func() {
			So(submission.IsKnownTag("Video"), ShouldBeFalse)
			So(submission.IsKnownTag(""), ShouldBeFalse)
		})
	})
}
