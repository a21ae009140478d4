package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/trebuchet-org/cep78-cli/internal/domain"
	"github.com/trebuchet-org/cep78-cli/internal/usecase"
	"github.com/trebuchet-org/cep78-cli/pkg/clvalue"
)

// DeployResult is what a deploy command produced. Send is nil for dry runs.
type DeployResult struct {
	EntryPoint domain.EntryPoint
	Deploy     *domain.Deploy
	Send       *usecase.SendDeployResult
}

// DeployRenderer renders prepared and sent deploys
type DeployRenderer struct {
	out    io.Writer
	format Format
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer, format Format) *DeployRenderer {
	return &DeployRenderer{out: out, format: format}
}

func (r *DeployRenderer) Render(result *DeployResult) error {
	if r.format != FormatText {
		return Structured(r.out, r.format, r.structured(result))
	}

	if result.Send == nil {
		r.renderDeploy(result)
		return nil
	}

	if !result.Send.Sent {
		fmt.Fprintln(r.out, FormatWarning("Deploy not sent"))
		return nil
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Sent %s deploy", result.EntryPoint)))
	fmt.Fprintf(r.out, "Deploy hash: %s\n", color.New(color.FgCyan).Sprint(result.Send.DeployHash))
	return nil
}

func (r *DeployRenderer) structured(result *DeployResult) any {
	if result.Send == nil {
		return result.Deploy
	}
	return struct {
		EntryPoint domain.EntryPoint `json:"entry_point"`
		DeployHash string            `json:"deploy_hash"`
		Sent       bool              `json:"sent"`
	}{
		EntryPoint: result.EntryPoint,
		DeployHash: result.Send.DeployHash,
		Sent:       result.Send.Sent,
	}
}

func (r *DeployRenderer) renderDeploy(result *DeployResult) {
	d := result.Deploy
	bold := color.New(color.Bold)

	fmt.Fprintf(r.out, "%s %s\n", bold.Sprint("Deploy"), color.New(color.FgCyan).Sprint(d.HashHex()))
	fmt.Fprintln(r.out, renderTable(nil, TableData{
		{"Entry point", string(result.EntryPoint)},
		{"Chain", d.Header.ChainName},
		{"Account", d.Header.Account.Hex()},
		{"Timestamp", d.Header.Timestamp.UTC().Format("2006-01-02 15:04:05.000 MST")},
		{"TTL", domain.FormatTTL(d.Header.TTL)},
		{"Payment", paymentAmount(d) + " motes"},
		{"Session", session(d.Session)},
		{"Signed", signedBy(d)},
	}))

	args := d.Session.Args()
	if args == nil || args.Len() == 0 {
		return
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, bold.Sprint("Arguments"))
	rows := lo.Map(args.Items(), func(arg clvalue.NamedArg, _ int) []string {
		return []string{arg.Name, arg.Value.Type().String(), arg.Value.String()}
	})
	fmt.Fprintln(r.out, renderTable([]string{"NAME", "TYPE", "VALUE"}, rows))

	if !d.Signed() {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning("Deploy is not signed, configure --key to send it"))
	}
}

func paymentAmount(d *domain.Deploy) string {
	amount, ok := d.Payment.Args().Get("amount")
	if !ok {
		return "?"
	}
	motes, err := amount.AsU512()
	if err != nil {
		return "?"
	}
	return motes.Dec()
}

func session(item domain.ExecutableDeployItem) string {
	switch {
	case item.StoredContractByHash != nil:
		s := item.StoredContractByHash
		return fmt.Sprintf("%s on %s", s.EntryPoint, clvalue.HashKey(s.Hash))
	case item.ModuleBytes != nil:
		return fmt.Sprintf("session program (%d bytes)", len(item.ModuleBytes.Module))
	default:
		return "none"
	}
}

func signedBy(d *domain.Deploy) string {
	if !d.Signed() {
		return color.New(color.FgYellow).Sprint("no")
	}
	signers := lo.Map(d.Approvals, func(a domain.Approval, _ int) string {
		return a.Signer.Hex()
	})
	return color.New(color.FgGreen).Sprint("yes") + " (" + signers[0] + lo.Ternary(len(signers) > 1, ", ...", "") + ")"
}
