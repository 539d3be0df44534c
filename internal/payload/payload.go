package payload

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/hamed0406/hookprobe/internal/config"
	"github.com/hamed0406/hookprobe/internal/domain"
	"github.com/hamed0406/hookprobe/internal/imaging"
	"github.com/hamed0406/hookprobe/internal/probe"
)

// KeySet names the four fields of a JSON probe.
type KeySet struct {
	Image    string
	Email    string
	Language string
	Source   string
}

var (
	// FormKeys are the keys the web form mapping produces.
	FormKeys = KeySet{Image: ":0", Email: "{user.email}", Language: "language_choise", Source: "PAGE_AND_SECTION"}
	// PlainKeys are the shortened keys of the optimized payload.
	PlainKeys = KeySet{Image: "image", Email: "email", Language: "language", Source: "source_url"}
)

// Profile holds the values every probe carries besides the image.
type Profile struct {
	Email               string
	Language            string
	MarketplaceLanguage string
	SourceURL           string
}

// dotPNG is a 1x1 red PNG.
const dotPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

const plainText = "Just some text, not a URL"

func DataURI(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func DotDataURI() string {
	return "data:image/png;base64," + dotPNG
}

// JSON builds the one-record array the hook receives from the web app.
func JSON(keys KeySet, p Profile, image string) probe.JSONPayload {
	return probe.JSONPayload{{
		keys.Image:    image,
		keys.Email:    p.Email,
		keys.Language: p.Language,
		keys.Source:   p.SourceURL,
	}}
}

// Multipart sends the photo as a real file part named "image".
func Multipart(p Profile, jpegData []byte) probe.MultipartPayload {
	return probe.MultipartPayload{
		Fields: domain.Fields{
			"email":                p.Email,
			"user_language":        p.Language,
			"marketplace_language": p.MarketplaceLanguage,
			"source_url":           p.SourceURL,
		},
		File: domain.Attachment{
			Field:       "image",
			Filename:    "image.jpg",
			ContentType: "image/jpeg",
			Data:        jpegData,
		},
	}
}

type Options struct {
	Profile
	RemoteImageURL   string
	ImagePath        string
	JSONTimeout      time.Duration
	OptimizedTimeout time.Duration
	UploadTimeout    time.Duration
}

func OptionsFromConfig(c config.Config) Options {
	return Options{
		Profile: Profile{
			Email:               c.Email,
			Language:            c.Language,
			MarketplaceLanguage: c.MarketplaceLanguage,
			SourceURL:           c.SourceURL,
		},
		RemoteImageURL:   c.RemoteImageURL,
		ImagePath:        c.ImagePath,
		JSONTimeout:      c.ProbeTimeout,
		OptimizedTimeout: c.OptimizedTimeout,
		UploadTimeout:    c.UploadTimeout,
	}
}

// Skipped explains why a case was left out of the run.
type Skipped struct {
	Name   string
	Reason string
}

// Cases returns the probe variants in the order they should be sent:
// cheap text first, the photo upload last.
func Cases(o Options) ([]probe.Case, []Skipped) {
	cases := []probe.Case{
		{Name: "Simple Text", Payload: JSON(FormKeys, o.Profile, plainText), Timeout: o.JSONTimeout},
		{Name: "Base64 Dummy Image", Payload: JSON(FormKeys, o.Profile, DotDataURI()), Timeout: o.JSONTimeout},
	}
	var skipped []Skipped

	if o.RemoteImageURL != "" {
		cases = append(cases, probe.Case{Name: "Remote Image URL", Payload: JSON(FormKeys, o.Profile, o.RemoteImageURL), Timeout: o.JSONTimeout})
	} else {
		skipped = append(skipped, Skipped{Name: "Remote Image URL", Reason: "PROBE_REMOTE_IMAGE_URL not set"})
	}

	cases = append(cases, probe.Case{Name: "Optimized Keys", Payload: JSON(PlainKeys, o.Profile, DotDataURI()), Timeout: o.OptimizedTimeout})

	if o.ImagePath == "" {
		skipped = append(skipped, Skipped{Name: "Multipart Photo", Reason: "PROBE_IMAGE not set"})
		return cases, skipped
	}
	up, err := imaging.PrepareFile(o.ImagePath)
	if err != nil {
		skipped = append(skipped, Skipped{Name: "Multipart Photo", Reason: fmt.Sprintf("failed to process image: %v", err)})
		return cases, skipped
	}
	cases = append(cases, probe.Case{Name: "Multipart Photo", Payload: Multipart(o.Profile, up.Data), Timeout: o.UploadTimeout})
	return cases, skipped
}
