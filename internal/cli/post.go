package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"trznica/internal/client"
	"trznica/internal/imaging"
	"trznica/internal/model"
)

// PostOptions holds flags for the post command.
type PostOptions struct {
	*RootOptions
	Server      string
	Seller      string
	Title       string
	Description string
	Price       float64
	Location    string
	MeetingTime string
	ImagePath   string
}

// NewPostCommand creates the post command.
func NewPostCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PostOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Submit a new listing",
		Long: `Validate and submit a new listing to the marketplace.

An optional photo is downscaled if oversized and embedded in the listing.
Submissions are never retried automatically: on a transport failure,
resubmit.

Example:
  trznica post --seller Al --title Bike --description "Barely used road bike" \
    --price 150 --location Downtown --meeting Weekends --image bike.jpg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPost(opts)
		},
	}

	addClientFlags(cmd, &opts.Server)
	cmd.Flags().StringVar(&opts.Seller, "seller", "", "seller name (required)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "listing title")
	cmd.Flags().StringVar(&opts.Description, "description", "", "what is being sold")
	cmd.Flags().Float64Var(&opts.Price, "price", 0, "asking price")
	cmd.Flags().StringVar(&opts.Location, "location", "", "where to meet")
	cmd.Flags().StringVar(&opts.MeetingTime, "meeting", "", "when the seller is available")
	cmd.Flags().StringVar(&opts.ImagePath, "image", "", "path to a JPEG or PNG photo")
	_ = cmd.MarkFlagRequired("seller")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("price")
	_ = cmd.MarkFlagRequired("location")
	_ = cmd.MarkFlagRequired("meeting")

	return cmd
}

func runPost(opts *PostOptions) error {
	// The terminal form requires a seller, like the browser form does.
	if strings.TrimSpace(opts.Seller) == "" {
		return fmt.Errorf("seller name is required")
	}

	sub := model.Submission{
		Seller:      opts.Seller,
		Title:       opts.Title,
		Description: opts.Description,
		Price:       model.Price(opts.Price),
		Location:    opts.Location,
		MeetingTime: opts.MeetingTime,
	}

	if opts.ImagePath != "" {
		uri, err := prepareImage(opts.ImagePath)
		if err != nil {
			return err
		}
		sub.Image = uri
	}

	// Validate locally before touching the network, mirroring the
	// browser form.
	if err := sub.Validate(); err != nil {
		return err
	}

	c := client.New(serverURL(opts.Server))
	ctx := context.Background()

	item, err := c.Create(ctx, sub)
	if err != nil {
		if client.IsValidation(err) {
			return err
		}
		return fmt.Errorf("%w (please try again)", err)
	}

	fmt.Printf("Listed as item #%d.\n", item.ID)

	// Full reload after a successful submission, like any other poll.
	items, err := c.List(ctx)
	if err != nil {
		// The listing went through; the refresh is best effort.
		return nil
	}
	fmt.Printf("The catalog now has %d item(s).\n", len(items))
	return nil
}

// prepareImage reads, validates, downscales, and encodes a photo as the
// data URI carried inside the listing.
func prepareImage(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	processed, err := imaging.Process(f)
	if err != nil {
		return "", err
	}
	return imaging.EncodeDataURI(processed.Data, processed.MIME), nil
}
