package emitter

import (
	"fmt"
	"io"

	"github.com/alan2022/alanc/internal/symtab"
)

// Serialize writes the full Jasmin-dialect listing: the class preamble,
// then one method per body in insertion order. The body named "main" (the
// top-level program body) is emitted with the platform's array-of-string
// parameter signature; every other body gets its IDProp's descriptor.
func (e *Emitter) Serialize(w io.Writer) error {
	out := &writer{w: w}
	e.writePreamble(out)
	for _, b := range e.bodies {
		e.writeMethod(out, b, b.Name == "main")
	}
	return out.err
}

type writer struct {
	w   io.Writer
	err error
}

func (w *writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (e *Emitter) writePreamble(out *writer) {
	cn := e.ClassName
	out.printf(".class public %s\n", cn)
	out.printf(".super java/lang/Object\n\n")

	out.printf(".field private static final charsetName Ljava/lang/String; = \"UTF-8\"\n")
	out.printf(".field private static final usLocale Ljava/util/Locale;\n")
	out.printf(".field private static final scanner Ljava/util/Scanner;\n\n")

	out.printf(".method static <clinit>()V\n")
	out.printf("\t.limit stack 4\n")
	out.printf("\t.limit locals 0\n")
	out.printf("\tnew java/util/Locale\n")
	out.printf("\tdup\n")
	out.printf("\tldc \"en\"\n")
	out.printf("\tldc \"US\"\n")
	out.printf("\tinvokespecial java/util/Locale/<init>(Ljava/lang/String;Ljava/lang/String;)V\n")
	out.printf("\tputstatic %s/usLocale Ljava/util/Locale;\n", cn)
	out.printf("\tnew java/util/Scanner\n")
	out.printf("\tdup\n")
	out.printf("\tgetstatic java/lang/System/in Ljava/io/InputStream;\n")
	out.printf("\tgetstatic %s/charsetName Ljava/lang/String;\n", cn)
	out.printf("\tinvokespecial java/util/Scanner/<init>(Ljava/io/InputStream;Ljava/lang/String;)V\n")
	out.printf("\tputstatic %s/scanner Ljava/util/Scanner;\n", cn)
	out.printf("\tgetstatic %s/scanner Ljava/util/Scanner;\n", cn)
	out.printf("\tgetstatic %s/usLocale Ljava/util/Locale;\n", cn)
	out.printf("\tinvokevirtual java/util/Scanner/useLocale(Ljava/util/Locale;)Ljava/util/Scanner;\n")
	out.printf("\tpop\n")
	out.printf("\treturn\n")
	out.printf(".end method\n\n")

	out.printf(".method public <init>()V\n")
	out.printf("\t.limit stack 1\n")
	out.printf("\t.limit locals 1\n")
	out.printf("\taload_0\n")
	out.printf("\tinvokespecial java/lang/Object/<init>()V\n")
	out.printf("\treturn\n")
	out.printf(".end method\n\n")

	out.printf(".method static readInt()I\n")
	out.printf("\t.limit stack 1\n")
	out.printf("\t.limit locals 0\n")
	out.printf("\tgetstatic %s/scanner Ljava/util/Scanner;\n", cn)
	out.printf("\tinvokevirtual java/util/Scanner/nextInt()I\n")
	out.printf("\tireturn\n")
	out.printf(".end method\n\n")

	out.printf(".method static readBoolean()Z\n")
	out.printf("\t.limit stack 1\n")
	out.printf("\t.limit locals 0\n")
	out.printf("\tgetstatic %s/scanner Ljava/util/Scanner;\n", cn)
	out.printf("\tinvokevirtual java/util/Scanner/nextBoolean()Z\n")
	out.printf("\tireturn\n")
	out.printf(".end method\n\n")
}

func (e *Emitter) writeMethod(out *writer, b *Body, isTop bool) {
	name := b.Name
	if isTop {
		name = "main"
	}
	sig := methodSignature(b, isTop)
	out.printf(".method public static %s%s\n", name, sig)
	out.printf("\t.limit stack %d\n", max(b.maxStackDepth, 1))
	out.printf("\t.limit locals %d\n", max(int(b.varsWidth), 1))

	items := b.items
	if n := len(items); n > 0 && items[n-1].kind == itemLabel {
		items = append(append([]codeItem{}, items...), codeItem{kind: itemInstr, op: Nop})
	}

	for _, it := range items {
		switch it.kind {
		case itemLabel:
			out.printf("%s\n", it.render())
		case itemInstr:
			if noOperandOps[it.op] {
				out.printf("\t%s\n", it.render())
			} else {
				out.printf("\t%s", it.render())
			}
		default:
			out.printf("%s\n", it.render())
		}
	}

	out.printf(".end method\n\n")
}

func methodSignature(b *Body, isTop bool) string {
	if isTop {
		return "([Ljava/lang/String;)V"
	}
	isProcedure := b.Prop.Type.Base() == symtab.Void
	return MethodDescriptor(b.Prop.Params, b.Prop.Type, isProcedure)
}
